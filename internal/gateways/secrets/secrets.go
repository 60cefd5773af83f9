package secrets

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/model"
	"github.com/zalando/go-keyring"
)

const (
	service = app.Name
	user    = "credentials"
)

type Secrets struct{}

func NewSecrets() *Secrets {
	return &Secrets{}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Site     string `json:"site"`
}

// GetCredentials returns empty credentials when none were stored.
func (s *Secrets) GetCredentials() (model.Credentials, error) {
	data, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return model.Credentials{}, nil
		}
		return model.Credentials{}, fmt.Errorf("could not get credentials: %w", err)
	}

	var c credentials
	err = json.Unmarshal([]byte(data), &c)
	if err != nil {
		return model.Credentials{}, fmt.Errorf("could not unmarshal credentials: %w", err)
	}

	return model.Credentials{
		Username: c.Username,
		Password: c.Password,
		Site:     c.Site,
	}, nil
}

func (s *Secrets) SetCredentials(value model.Credentials) error {
	data, err := json.Marshal(credentials{
		Username: value.Username,
		Password: value.Password,
		Site:     value.Site,
	})
	if err != nil {
		return fmt.Errorf("could not marshal credentials: %w", err)
	}
	err = keyring.Set(service, user, string(data))
	if err != nil {
		return fmt.Errorf("could not save credentials: %w", err)
	}

	return nil
}

func (s *Secrets) DeleteCredentials() error {
	err := keyring.Delete(service, user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("could not delete credentials: %w", err)
	}
	return nil
}
