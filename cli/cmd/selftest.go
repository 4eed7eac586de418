package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/ardnew/binconf/lang"
	"github.com/ardnew/binconf/log"
)

// fixture pairs a source program with its expected JSON translation.
type fixture struct {
	name     string
	source   string
	expected string
}

// fixtures are the built-in self-test programs run by --run-tests.
var fixtures = []fixture{
	{
		name: "basic_dict",
		source: `
		@{
		  port = 0b111111011000;
		  host = [[localhost]];
		}
		`,
		expected: `{"port": 4056, "host": "localhost"}`,
	},
	{
		name: "arrays_and_nested_dict",
		source: `
		@{
		  numbers = array(0b1, 0b10, 0b11);
		  nested  = @{
		    name = [[inner]];
		  };
		}
		`,
		expected: `{"numbers": [1, 2, 3], "nested": {"name": "inner"}}`,
	},
	{
		name: "consts",
		source: `
		(def base_port 0b111111011000);
		(def host_name [[localhost]]);

		@{
		  port = $base_port$;
		  host = $host_name$;
		}
		`,
		expected: `{"port": 4056, "host": "localhost"}`,
	},
	{
		name: "two_domains",
		source: `
		(def default_port 0b1010001011);
		(def base_hp 0b1100100);

		@{
		  network = @{
		    name = [[main_server]];
		    port = $default_port$;
		    tags = array([[web]], [[prod]]);
		  };
		  game = @{
		    player = [[Hero]];
		    hp = $base_hp$;
		  };
		}
		`,
		expected: `{
			"network": {
				"name": "main_server",
				"port": 651,
				"tags": ["web", "prod"]
			},
			"game": {
				"player": "Hero",
				"hp": 100
			}
		}`,
	},
}

// runSelftest translates each fixture and compares the result against its
// expected JSON. A mismatch is a defect in the translator itself, so it
// panics rather than returning an error. On success it prints the number of
// fixtures passed.
func runSelftest(ctx context.Context, w io.Writer) error {
	passed := 0

	for _, fix := range fixtures {
		log.TraceContext(ctx, "selftest fixture",
			slog.String("name", fix.name),
		)

		val, err := lang.Translate(ctx, fix.source,
			lang.WithLogger(log.Default()),
		)
		if err != nil {
			panic(fmt.Sprintf("%s failed: %v", fix.name, err))
		}

		got, err := decodeJSON(val)
		if err != nil {
			panic(fmt.Sprintf("%s failed: %v", fix.name, err))
		}

		var want any
		if err := json.Unmarshal([]byte(fix.expected), &want); err != nil {
			panic(fmt.Sprintf("%s has malformed expectation: %v", fix.name, err))
		}

		if !reflect.DeepEqual(got, want) {
			panic(fmt.Sprintf(
				"%s failed: expected %v, got %v", fix.name, want, got,
			))
		}

		passed++
	}

	_, err := fmt.Fprintf(w, "all tests passed: %d\n", passed)

	return err
}

// decodeJSON round-trips a value through its JSON encoding into native Go
// structures for structural comparison.
func decodeJSON(val lang.Value) (any, error) {
	data, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return out, nil
}
