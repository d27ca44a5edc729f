package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"golang.org/x/term"

	"github.com/rhanlin/graphql-demo/internal/graph"
)

var (
	queryJSON       bool
	queryVariables  string
	queryOperation  string
	querySchemaOnly bool
)

var graphqlCmd = &cobra.Command{
	Use:     "graphql <query>",
	Aliases: []string{"query", "q"},
	Short:   "Execute a GraphQL query or mutation",
	Long: `Execute a GraphQL query or mutation against the in-memory dataset.

The argument should be a valid GraphQL query or mutation string. Mutations
only live for the duration of the command.

Examples:
  # Say hello
  graphql-demo graphql '{ hello }'

  # Follow relationships
  graphql-demo graphql '{ me { name friends { name } posts { title likeGivers { name } } } }'

  # Convert units
  graphql-demo graphql '{ users { name height(unit: FOOT) weight(unit: POUND) } }'

  # Use variables
  graphql-demo graphql -v '{"name": "Leo"}' 'query ($name: String!) { user(name: $name) { age } }'

  # Read from stdin
  cat query.graphql | graphql-demo graphql

  # Print the schema
  graphql-demo graphql --schema`,
	Args: func(cmd *cobra.Command, args []string) error {
		if querySchemaOnly {
			return nil
		}
		// Allow 0 args if stdin has data, or exactly 1 arg
		if len(args) > 1 {
			return fmt.Errorf("accepts at most 1 argument (the GraphQL query)")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Schema-only mode
		if querySchemaOnly {
			fmt.Fprint(cmd.OutOrStdout(), formatSchema())
			return nil
		}

		var query string
		if len(args) == 1 {
			query = args[0]
		} else {
			stdinQuery, err := readFromStdin()
			if err != nil {
				return err
			}
			if stdinQuery == "" {
				return fmt.Errorf("no query provided (pass as argument or pipe to stdin)")
			}
			query = stdinQuery
		}

		var variables map[string]interface{}
		if queryVariables != "" {
			if err := json.Unmarshal([]byte(queryVariables), &variables); err != nil {
				return fmt.Errorf("invalid variables JSON: %w", err)
			}
		}

		result, err := executeQuery(query, variables, queryOperation)
		if err != nil {
			return err
		}

		if queryJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(cmd.OutOrStdout(), string(result))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(pretty.Color(pretty.Pretty(result), nil)))
		}

		return nil
	},
}

// readFromStdin reads the query from stdin if it is not a terminal.
func readFromStdin() (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// executeQuery runs a GraphQL operation against the current store.
// On success, it returns just the data portion of the response.
// Any error in the response fails the whole command.
func executeQuery(query string, variables map[string]interface{}, operationName string) ([]byte, error) {
	schema, closeIndex, err := newExecutableSchema()
	if err != nil {
		return nil, err
	}
	defer closeIndex()

	resp := schema.Exec(context.Background(), query, operationName, variables)
	if len(resp.Errors) > 0 {
		return nil, formatGraphQLErrors(toGQLErrors(resp.Errors))
	}

	return resp.Data, nil
}

// toGQLErrors converts engine errors so they print with their locations.
func toGQLErrors(errs []*gqlerrors.QueryError) gqlerror.List {
	list := make(gqlerror.List, 0, len(errs))
	for _, e := range errs {
		ge := &gqlerror.Error{Message: e.Message}
		for _, loc := range e.Locations {
			ge.Locations = append(ge.Locations, gqlerror.Location{Line: loc.Line, Column: loc.Column})
		}
		list = append(list, ge)
	}
	return list
}

// formatGraphQLErrors formats GraphQL errors into a single error.
func formatGraphQLErrors(errs gqlerror.List) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return fmt.Errorf("graphql: %s", errs[0].Message)
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("graphql errors:\n  %s", strings.Join(msgs, "\n  "))
}

// formatSchema returns the GraphQL schema in canonical formatting.
func formatSchema() string {
	schema := gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: graph.Schema})

	var buf bytes.Buffer
	f := formatter.NewFormatter(&buf, formatter.WithIndent("  "))
	f.FormatSchema(schema)

	return buf.String()
}

func init() {
	graphqlCmd.Flags().BoolVar(&queryJSON, "json", false, "Output raw JSON (no formatting)")
	graphqlCmd.Flags().StringVarP(&queryVariables, "variables", "v", "", "Query variables as JSON string")
	graphqlCmd.Flags().StringVarP(&queryOperation, "operation", "o", "", "Operation name (for multi-operation documents)")
	graphqlCmd.Flags().BoolVar(&querySchemaOnly, "schema", false, "Print the GraphQL schema and exit")
	rootCmd.AddCommand(graphqlCmd)
}
