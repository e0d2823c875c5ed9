package schema

import (
	"github.com/graphql-go/graphql"
	runsvc "github.com/wfstat-cloud/wfstat/api/rest/service/run"
	tasksvc "github.com/wfstat-cloud/wfstat/api/rest/service/task"
)

// New instantiates a fresh GraphQL schema for
// wfstat's API.
func New() graphql.SchemaConfig {
	return graphql.SchemaConfig{
		Query: graphql.NewObject(
			graphql.ObjectConfig{
				Name:   "Query",
				Fields: fields(),
			},
		),
	}
}

var runType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Run",
	Fields: graphql.Fields{
		"runnum":    &graphql.Field{Type: graphql.Int},
		"run_id":    &graphql.Field{Type: graphql.String},
		"began":     &graphql.Field{Type: graphql.String},
		"completed": &graphql.Field{Type: graphql.String},
		"elapsed":   &graphql.Field{Type: graphql.String},
	},
})

var summaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TaskSummary",
	Fields: graphql.Fields{
		"runnum":     &graphql.Field{Type: graphql.Int},
		"tasknum":    &graphql.Field{Type: graphql.Int},
		"task_id":    &graphql.Field{Type: graphql.Int},
		"function":   &graphql.Field{Type: graphql.String},
		"status":     &graphql.Field{Type: graphql.String},
		"lastUpdate": &graphql.Field{Type: graphql.String},
		"fails":      &graphql.Field{Type: graphql.Int},
		"try_id":     &graphql.Field{Type: graphql.Int},
		"hostname":   &graphql.Field{Type: graphql.String},
		"launched":   &graphql.Field{Type: graphql.String},
		"start":      &graphql.Field{Type: graphql.String},
		"waitTime":   &graphql.Field{Type: graphql.String},
		"ended":      &graphql.Field{Type: graphql.String},
		"runTime":    &graphql.Field{Type: graphql.String},
	},
})

func fields() graphql.Fields {
	return graphql.Fields{
		"runs": &graphql.Field{
			Type: graphql.NewList(runType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return runsvc.Service(p.Context).List()
			},
		},
		"tasks": &graphql.Field{
			Type: graphql.NewList(summaryType),
			Args: graphql.FieldConfigArgument{
				"runnum":   &graphql.ArgumentConfig{Type: graphql.Int},
				"status":   &graphql.ArgumentConfig{Type: graphql.String},
				"function": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				req := &tasksvc.ListRequest{}
				if v, ok := p.Args["runnum"].(int); ok {
					req.RunNum = v
				}
				if v, ok := p.Args["status"].(string); ok {
					req.Status = v
				}
				if v, ok := p.Args["function"].(string); ok {
					req.Function = v
				}
				return tasksvc.Service(p.Context).List(req)
			},
		},
		"recent": &graphql.Field{
			Type: graphql.NewList(summaryType),
			Args: graphql.FieldConfigArgument{
				"limit": &graphql.ArgumentConfig{Type: graphql.Int},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				limit := 50
				if v, ok := p.Args["limit"].(int); ok {
					limit = v
				}
				return tasksvc.Service(p.Context).Recent(limit)
			},
		},
	}
}
