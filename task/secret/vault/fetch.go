// Package vault provides a task handler that sources secrets
// from hashicorp vault.
package vault

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/greenscreen-io/go-cobol-task/task"
	"github.com/greenscreen-io/go-cobol-task/task/common"
)

// Type is the task type handled by this package.
const Type = "secret/vault/fetch"

type input struct {
	Config *Config `json:"config"`
	Path   string  `json:"path"`
	Key    string  `json:"key"`
}

// FetchHandler is a task handler that fetches a secret from
// vault. It runs as a secret sub-task so the fetched value can
// be referenced by other tasks in the same request.
//
// Sample json input:
//
//	{
//	    "task": {
//	        "id": "ibmi_password",
//	        "type": "secret/vault/fetch",
//	        "data": {
//	            "config": {
//	                "address": "http://localhost:8200",
//	                "token": "root"
//	            },
//	            "path": "secret/data/ibmi",
//	            "key": "password"
//	        }
//	    }
//	}
func FetchHandler(ctx context.Context, req *task.Request) task.Response {
	in := new(input)

	// decode the task input.
	err := json.Unmarshal(req.Task.Data, in)
	if err != nil {
		return task.Error(err)
	}

	client, err := New(in.Config)
	if err != nil {
		return task.Error(err)
	}

	secret, err := client.Logical().ReadWithContext(ctx, in.Path)
	if err != nil {
		return task.Error(err)
	}
	if secret == nil || secret.Data == nil {
		return task.Error(fmt.Errorf("could not find secret: %s", in.Path))
	}

	// unwrap the nested data object returned by the kv v2
	// secrets engine.
	if data, ok := secret.Data["data"].(map[string]interface{}); ok {
		secret.Data = data
	}

	for k, v := range secret.Data {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if k == in.Key {
			return task.Respond(
				&common.Secret{
					Value: s,
				},
			)
		}
	}

	return task.Error(fmt.Errorf("could not find secret key: %s", in.Key))
}
