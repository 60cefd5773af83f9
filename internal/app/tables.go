package app

import "github.com/quintans/noovo/internal/model"

// Tables holds the static entitlement lookups.
type Tables struct {
	ScopeToSubscription   map[string]string
	SubscriptionToPackage map[string]string
}

func DefaultTables() Tables {
	return Tables{
		ScopeToSubscription: map[string]string{
			"cand":  "CANAL_D",
			"canv":  "CANAL_VIE",
			"noovo": "NOOVO",
			"ztele": "Z",
		},
		SubscriptionToPackage: map[string]string{
			"Z":         "z_hub",
			"CANAL_D":   "canald_hub",
			"CANAL_VIE": "canalvie_hub",
		},
	}
}

// Entitlements derives subscriptions and packages from the scopes.
// Scopes or subscriptions without a mapping are ignored.
func (t Tables) Entitlements(scopes []string) model.Entitlements {
	e := model.Entitlements{
		Scopes:        append([]string{}, scopes...),
		Subscriptions: []string{},
		Packages:      []string{},
	}
	for _, scope := range scopes {
		if sub, ok := t.ScopeToSubscription[scope]; ok {
			e.Subscriptions = append(e.Subscriptions, sub)
		}
	}
	for _, sub := range e.Subscriptions {
		if pkg, ok := t.SubscriptionToPackage[sub]; ok {
			e.Packages = append(e.Packages, pkg)
		}
	}
	return e
}
