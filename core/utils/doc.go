// Package utils provides common utility functions for the relation checker.
// It includes helper functions for converting loosely typed attribute values
// (cursor rows, decoded JSON, query parameters) into the types the checks need.
package utils
