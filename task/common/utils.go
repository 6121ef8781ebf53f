package common

// Secret is a secret value resolved by a secret task,
// keyed by the identifier of the task that produced it.
type Secret struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value"`
}

// SecretsToMap converts a list of secrets to the map
// structure expected by the expression resolver, with
// the secret ID as the key and the secret value as the
// value.
func SecretsToMap(secrets []*Secret) map[string]any {
	m := make(map[string]any, len(secrets))
	for _, secret := range secrets {
		m[secret.ID] = secret.Value
	}
	return map[string]any{
		"secrets": m,
	}
}
