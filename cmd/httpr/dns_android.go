//go:build android
// +build android

package main

// Pure-Go DNS resolution is broken on Android; this import patches it.
import _ "github.com/mtibben/androiddnsfix"
