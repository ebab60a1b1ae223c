// Package environment names the deployment environments the service knows
// about and normalizes their spelling.
package environment
