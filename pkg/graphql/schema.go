// Package graphql serves a graphql-go schema over HTTP.
//
//	schema, _ := graphql.NewSchema(rootQuery)
//	router.HandleFunc("/graphql", graphql.Handler(schema))
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/offerdesk/pkg/bind"
	"github.com/shashiranjanraj/offerdesk/pkg/response"
)

// NewSchema creates a read-only schema from a root query.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Request is the standard GraphQL-over-HTTP body.
type Request struct {
	Query         *string                `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes queries from GET ?query=... or a POST JSON body. Query
// errors are reported in the result's "errors" list with status 200.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request

		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query().Get("query")
			if q == "" {
				response.BadRequest(w, "query parameter is required")
				return
			}
			req.Query = &q
			req.OperationName = r.URL.Query().Get("operationName")
			if v := r.URL.Query().Get("variables"); v != "" {
				if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
					response.BadRequest(w, "variables must be a JSON object")
					return
				}
			}
		case http.MethodPost:
			errs, err := bind.JSON(r, &req)
			if err != nil {
				response.BadRequest(w, err.Error())
				return
			}
			if len(errs) > 0 {
				response.ValidationError(w, errs)
				return
			}
		default:
			response.MethodNotAllowed(w)
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  *req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})
		response.JSON(w, http.StatusOK, result)
	}
}
