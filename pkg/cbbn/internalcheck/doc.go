// Package internalcheck holds source policy tests for the packages that touch
// key material. It has no API; the checks run under go test.
package internalcheck
