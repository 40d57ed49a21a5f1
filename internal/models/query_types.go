// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeLoanApplication      QueryType = "loan_application"
	QueryTypeApplicationDocuments QueryType = "application_documents"
	QueryTypeUserDocuments        QueryType = "user_documents"
)
