package expression

import (
	"bytes"
	"encoding/json"

	"github.com/greenscreen-io/go-cobol-task/task/common"
	"github.com/greenscreen-io/go-cobol-task/task/expression/evaler"
)

// secretPrefix marks the start of a secret reference in
// task data, in the format "${{secrets.<secret_id>}}".
const secretPrefix = "${{secrets"

// secretResolver replaces secret references in task data
// with the values of the named secrets.
type secretResolver struct {
	secrets []*common.Secret
}

func newSecretResolver(secrets []*common.Secret) *secretResolver {
	return &secretResolver{secrets: secrets}
}

func (r *secretResolver) Resolve(data []byte) ([]byte, error) {
	v := map[string]any{}

	// unmarshal the task data into a map
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	// walk the map and replace secret references
	evaler.Eval(v, r.secrets)

	// encode the map back to json. a custom encoder is used
	// so html characters in the data are not escaped.
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	// trim the trailing newline added by the encoder
	return bytes.TrimSpace(buf.Bytes()), nil
}
