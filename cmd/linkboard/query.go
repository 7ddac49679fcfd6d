/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/executor"
	"github.com/botobag/linkboard/graphql/parser"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errNoData is returned when the query could not be executed at all. The result explaining why has
// been printed already.
var errNoData = errors.New("query produced no data")

func newQueryCommand(opts *globalOptions) *cobra.Command {
	var (
		variables     string
		operationName string
	)

	cmd := &cobra.Command{
		Use:   "query [QUERY]",
		Short: "Run a query or mutation against the seed and print the result as JSON",
		Long: `Run a query or mutation against a store populated from the seed and print the result
as JSON. The query is read from the standard input when not given as an argument.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op graphql.Op = "linkboard.query"

			var query string
			if len(args) > 0 {
				query = args[0]
			} else {
				body, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return graphql.NewError("cannot read query", op, err)
				}
				query = string(body)
			}
			if len(strings.TrimSpace(query)) == 0 {
				return graphql.NewError("must provide query string", op, graphql.ErrKindValidation)
			}

			var variableValues map[string]interface{}
			if len(variables) > 0 {
				decoder := json.NewDecoder(bytes.NewReader([]byte(variables)))
				decoder.UseNumber()
				if err := decoder.Decode(&variableValues); err != nil {
					return graphql.NewError("variables are invalid JSON", op, graphql.ErrKindValidation, err)
				}
			}

			schema, err := opts.newSchema()
			if err != nil {
				return err
			}

			var result *executor.ExecutionResult
			document, err := parser.Parse(query)
			if err != nil {
				result = &executor.ExecutionResult{
					Errors: graphql.ErrorsOf(err),
				}
			} else {
				result = executor.Execute(cmd.Context(), executor.ExecuteParams{
					Schema:         schema,
					Document:       document,
					OperationName:  operationName,
					VariableValues: variableValues,
				})
			}

			out := cmd.OutOrStdout()
			if err := result.MarshalJSONTo(out); err != nil {
				return err
			}
			fmt.Fprintln(out)

			if result.Data == nil {
				return errNoData
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&variables, "variables", "", "JSON object with the values of the query variables")
	flags.StringVar(&operationName, "operation", "", "name of the operation to run if QUERY has several")

	return cmd
}
