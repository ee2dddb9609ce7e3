package modules

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petal-labs/jutge/core"
)

// API groups the wrapped modules of the Jutge API.
type API struct {
	Misc       *Misc
	Tables     *Tables
	Problems   *Problems
	Student    *Student
	Playground *Playground

	client *core.Client
}

// New wraps client.
func New(client *core.Client) *API {
	return &API{
		Misc:       &Misc{client: client},
		Tables:     &Tables{client: client},
		Problems:   &Problems{client: client},
		Student:    &Student{client: client},
		Playground: &Playground{client: client},
		client:     client,
	}
}

// Client returns the underlying client.
func (a *API) Client() *core.Client {
	return a.client
}

// Decode unmarshals a raw output into the target type T.
//
// Example:
//
//	out, _, err := client.Execute(ctx, "misc.getTime", nil)
//	if err != nil {
//	    return err
//	}
//	t, err := modules.Decode[modules.Time](out)
func Decode[T any](raw json.RawMessage) (*T, error) {
	var result T
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// call executes fn and decodes its output into T.
func call[T any](ctx context.Context, c *core.Client, fn string, input any, files ...[]byte) (*T, error) {
	out, _, err := c.Execute(ctx, fn, input, files...)
	if err != nil {
		return nil, err
	}
	v, err := Decode[T](out)
	if err != nil {
		return nil, outputError(fn, err)
	}
	return v, nil
}

// callDownload executes fn and returns its single download.
func callDownload(ctx context.Context, c *core.Client, fn string, input any, files ...[]byte) (*core.Download, error) {
	_, downloads, err := c.Execute(ctx, fn, input, files...)
	if err != nil {
		return nil, err
	}
	if len(downloads) != 1 {
		return nil, &core.APIError{
			Kind:    core.KindMalformedResponse,
			Func:    fn,
			Message: fmt.Sprintf("expected one download, got %d", len(downloads)),
		}
	}
	return &downloads[0], nil
}

func outputError(fn string, err error) error {
	return &core.APIError{
		Kind:    core.KindMalformedResponse,
		Func:    fn,
		Message: "unexpected output: " + err.Error(),
		Err:     err,
	}
}
