// Package api provides the HTTP request/response models for the StudyBuddy API.
//
// # API Overview
//
// StudyBuddy provides a RESTful API for:
//   - Uploading and indexing study documents
//   - Concept explanations grounded in the indexed document
//   - Quiz and flash card generation
//   - Topic discovery over the indexed content
//   - Health monitoring and metrics
//
// # Base URL
//
// The default base URL for the API is:
//
//	http://localhost:8080
//
// # Degradation contract
//
// Endpoints that call the generation backend never fail because of it:
// a backend error degrades to an error-marker answer or placeholder
// records with HTTP 200. Only input validation and indexing failures
// produce non-2xx responses.
package api
