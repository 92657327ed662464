// Package workspace shapes workspace-folder pick requests for an
// external command executor and maps the result back to a local folder
// via a URI lookup. Both collaborators live outside this core; only
// the request shape and the result filtering are owned here.
package workspace

import (
	"context"
	"errors"
	"fmt"
)

// PickFolderCommand is the remote command that shows the folder picker.
const PickFolderCommand = "_quickinput.pickFolder"

// Folder is a workspace folder known to the resolver.
type Folder struct {
	Name  string `json:"name"`
	URI   string `json:"uri"`
	Index int    `json:"index"`
}

// Resolver looks up workspace folders by URI equality.
type Resolver interface {
	FolderByURI(uri string) (Folder, bool)
}

// Executor runs a named command on the remote side and returns its
// raw result.
type Executor interface {
	Execute(ctx context.Context, command string, args map[string]any) (any, error)
}

// PickOptions configures the folder pick prompt.
type PickOptions struct {
	Placeholder    string
	IgnoreFocusOut bool
}

// ErrUnknownFolder is returned when the picked URI does not resolve to
// any known workspace folder.
var ErrUnknownFolder = errors.New("picked folder is not part of the workspace")

// PickFolder prompts the user to choose a workspace folder. A nil
// result with nil error means the user dismissed the prompt.
func PickFolder(ctx context.Context, exec Executor, resolver Resolver, opts PickOptions) (*Folder, error) {
	args := map[string]any{
		"placeholder":      opts.Placeholder,
		"ignore_focus_out": opts.IgnoreFocusOut,
	}

	result, err := exec.Execute(ctx, PickFolderCommand, args)
	if err != nil {
		return nil, fmt.Errorf("folder pick command failed: %w", err)
	}
	if result == nil {
		return nil, nil
	}

	uri, ok := pickedURI(result)
	if !ok {
		return nil, fmt.Errorf("folder pick returned unexpected result %T", result)
	}

	folder, ok := resolver.FolderByURI(uri)
	if !ok {
		return nil, ErrUnknownFolder
	}
	return &folder, nil
}

// pickedURI extracts the uri field from the executor's untyped result.
func pickedURI(result any) (string, bool) {
	switch v := result.(type) {
	case string:
		return v, v != ""
	case map[string]any:
		uri, ok := v["uri"].(string)
		return uri, ok && uri != ""
	default:
		return "", false
	}
}
