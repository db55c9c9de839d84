// Package platform is the HTTP client for the remote video platform's
// JSON API. It covers the two calls the pipeline makes after the upload:
// the processing-status query and caption draft submission. The chunked
// upload itself goes through the external uploader tool, not this client.
package platform
