// Package transcode implements the single-file extract and update pipelines
// together with the xml/ctl companion path mapping rule and their CLI
// command builders.
package transcode
