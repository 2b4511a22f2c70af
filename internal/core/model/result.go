package model

// Delta is what one merge produced: the statements to append plus the records
// they describe.
type Delta struct {
	Statements    []string       `json:"statements"`
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// AddNode records a node statement.
func (d *Delta) AddNode(n Node, statement string) {
	d.Nodes = append(d.Nodes, n)
	d.Statements = append(d.Statements, statement)
}

// AddRelationship records a relationship statement.
func (d *Delta) AddRelationship(r Relationship, statement string) {
	d.Relationships = append(d.Relationships, r)
	d.Statements = append(d.Statements, statement)
}

// Result summarises a pipeline run.
type Result struct {
	RunID            string `json:"run_id"`
	Success          bool   `json:"success"`
	OutputFile       string `json:"output_file"`
	ProcessedDocs    int    `json:"processed_docs"`
	NewNodes         int    `json:"new_nodes"`
	NewRelationships int    `json:"new_relationships"`
	TotalQueries     int    `json:"total_queries"`
}
