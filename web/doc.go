// Package web implements the HTTP surface of the demo backend.
//
// The web package provides:
// - JSON endpoints over the shared store under /api/figma
// - The read-only product catalog under /api/products
// - Request id and access logging middleware
package web
