// Package domain defines the core business entities of the task tracker
// (users and their tasks) together with the validation rules and error
// values shared by every other layer.
package domain
