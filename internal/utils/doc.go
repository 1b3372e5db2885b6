// Package utils provides shared configuration loading and logger
// construction for the command-line application.
package utils
