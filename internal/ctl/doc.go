// Package ctl serializes script collections into the CTL marker format and
// parses CTL documents back into ordered script entries.
package ctl
