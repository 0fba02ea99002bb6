// Package google handles OAuth2 authentication against the Google Meet
// API. Tokens are stored per account under the user cache directory.
package google
