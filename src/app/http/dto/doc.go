// Package dto contains Data Transfer Objects for HTTP requests and responses.
//
// DTOs are separate from domain entities to:
//   - Control what data is exposed in the API
//   - Handle JSON and query-string binding
//   - Add validation tags for request binding
//
// Naming convention:
//   - Body types: <Action><Resource>Request (e.g., CreateMemberRequest)
//   - Query-string types: <Resource>Query (e.g., PageQuery)
//   - Response types: <Resource>Response (e.g., IncrementAgesResponse)
package dto
