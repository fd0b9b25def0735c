// Package main provides the entry point of the Render shortcode service.
// It runs the admin web service, built on Fiber, where administrators browse,
// disable and enable shortcodes and manage the license, and it offers
// command line access to the shortcode list. State is kept in options stored
// with gorm.
package main
