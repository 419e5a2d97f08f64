// Package contrib ships the host panel's built-in plugins. They register
// through the same extension registry as third-party plugins, so the core
// dashboard exercises no private pathways.
package contrib
