package httpadapter

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestCORSMiddleware_Preflight(t *testing.T) {
	mw := CORSMiddleware()

	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodOptions)
	ctx.Request.SetRequestURI("/api/stratagems")
	mw(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusNoContent {
		t.Fatalf("preflight status: got=%d want=%d", got, consts.StatusNoContent)
	}
	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")), "*"; got != want {
		t.Fatalf("allow-origin mismatch: got=%q want=%q", got, want)
	}
	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")), corsAllowMethods; got != want {
		t.Fatalf("allow-methods mismatch: got=%q want=%q", got, want)
	}
}

func TestCORSMiddleware_PassThrough(t *testing.T) {
	mw := CORSMiddleware()

	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodPost)
	ctx.Request.SetRequestURI("/ops/pass/prices")
	mw(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got == consts.StatusNoContent {
		t.Fatal("non-preflight request must not be short-circuited")
	}
	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Headers")), corsAllowHeaders; got != want {
		t.Fatalf("allow-headers mismatch: got=%q want=%q", got, want)
	}
}
