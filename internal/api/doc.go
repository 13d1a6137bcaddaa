// Package api handles incoming HTTP requests, request validation and
// response formatting. It acts as an adapter between external clients and
// the account and task services, translating HTTP concerns to business
// operations and internal errors to safe status codes and messages.
package api
