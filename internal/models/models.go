package models

// All lists every monitoring table model, in creation order.
var All = []interface{}{
	&Workflow{},
	&Task{},
	&Try{},
	&Status{},
	&Block{},
}

// CreateStatements lists the raw DDL for the monitoring tables, in
// creation order. The tables are owned by the workflow engine; these
// statements exist so tests and fixtures can reproduce its schema.
var CreateStatements = []string{
	WorkflowCreate,
	TaskCreate,
	TryCreate,
	StatusCreate,
	BlockCreate,
}
