//go:build headless

package main

import (
	"context"
	"errors"

	"github.com/taigrr/softrast/pkg/render"
)

var errHeadless = errors.New("built with the headless tag")

func showWindow(context.Context, string, []*render.Framebuffer) error {
	return errHeadless
}

func copyToClipboard(*render.Framebuffer) error {
	return errHeadless
}
