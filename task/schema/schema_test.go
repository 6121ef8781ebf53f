package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validConnection = `{
	"host": "ibmi.example.com",
	"user": "QPGMR",
	"password": "hunter2"
}`

func TestValidate_Compile(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	data := []byte(`{
		"connection": ` + validConnection + `,
		"library": "TESTLIB",
		"program": "HELLO",
		"source": {
			"inline": "IDENTIFICATION DIVISION.\nPROGRAM-ID. HELLO."
		},
		"compileOptions": "DBGVIEW(*SOURCE)"
	}`)
	assert.NoError(t, v.Validate("cobol/compile", data))
}

func TestValidate_Compile_MissingHost(t *testing.T) {
	v := Must()

	data := []byte(`{
		"connection": {"user": "QPGMR", "password": "hunter2"},
		"library": "TESTLIB",
		"program": "HELLO",
		"source": {"inline": "PROGRAM-ID. HELLO."}
	}`)
	assert.Error(t, v.Validate("cobol/compile", data))
}

func TestValidate_Compile_AmbiguousSource(t *testing.T) {
	v := Must()

	// inline and uri are mutually exclusive
	data := []byte(`{
		"connection": ` + validConnection + `,
		"library": "TESTLIB",
		"program": "HELLO",
		"source": {
			"inline": "PROGRAM-ID. HELLO.",
			"uri": "https://repo.example.com/cobol/HELLO.cbl"
		}
	}`)
	assert.Error(t, v.Validate("cobol/compile", data))
}

func TestValidate_Compile_RepoSource(t *testing.T) {
	v := Must()

	data := []byte(`{
		"connection": ` + validConnection + `,
		"library": "FINLIB",
		"program": "CALCINT",
		"source": {
			"repo": {
				"clone": "https://git.example.com/cobol/finance.git",
				"ref": "main"
			},
			"path": "src/CALCINT.cbl"
		}
	}`)
	assert.NoError(t, v.Validate("cobol/compile", data))
}

func TestValidate_Call(t *testing.T) {
	v := Must()

	data := []byte(`{
		"connection": ` + validConnection + `,
		"library": "FINLIB",
		"program": "CALCINT",
		"parameters": ["2026-01-31", {"value": "CHECKING", "length": 512}],
		"timeout": "5m"
	}`)
	assert.NoError(t, v.Validate("cobol/call", data))
}

func TestValidate_Call_BadTimeout(t *testing.T) {
	v := Must()

	data := []byte(`{
		"connection": ` + validConnection + `,
		"library": "FINLIB",
		"program": "CALCINT",
		"timeout": "5 minutes"
	}`)
	assert.Error(t, v.Validate("cobol/call", data))
}

func TestValidate_Submit(t *testing.T) {
	v := Must()

	data := []byte(`{
		"connection": ` + validConnection + `,
		"library": "BATCHLIB",
		"program": "EODPROC",
		"parameters": ["2026-01-31"],
		"job": {
			"jobName": "EODBATCH",
			"jobQueue": "QBATCH"
		}
	}`)
	assert.NoError(t, v.Validate("cobol/submit", data))
}

func TestValidate_Submit_UnknownField(t *testing.T) {
	v := Must()

	data := []byte(`{
		"connection": ` + validConnection + `,
		"library": "BATCHLIB",
		"program": "EODPROC",
		"priority": 5
	}`)
	assert.Error(t, v.Validate("cobol/submit", data))
}

func TestValidate_UnknownType(t *testing.T) {
	v := Must()
	assert.Error(t, v.Validate("cobol/delete", []byte(`{}`)))
}

func TestValidate_MalformedData(t *testing.T) {
	v := Must()
	assert.Error(t, v.Validate("cobol/call", []byte(`{`)))
}

func TestTypes(t *testing.T) {
	v := Must()
	assert.ElementsMatch(t, []string{"cobol/compile", "cobol/call", "cobol/submit"}, v.Types())
}
