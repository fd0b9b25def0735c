// Package core provides the shortcodes shipped with Render, one file per category.
package core

// Source is the source label of every core shortcode.
const Source = "Render"
