// Package log provides the process-wide structured logger.
package log
