package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// A Function is a tool an expert can invoke during a chat turn.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// Library resolves the model's function calls by declared name.
type Library map[string]Function

// NewLibrary indexes a function set by name.
func NewLibrary[T Function](functions []T) Library {
	lib := make(Library, len(functions))
	for _, f := range functions {
		lib[f.Declaration().Name] = f
	}
	return lib
}

// Resolve dispatches one function call. Failures travel inside the response,
// never out of it, so the chat loop always has something to feed back.
func (l Library) Resolve(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	f, ok := l[call.Name]
	if !ok {
		return &genai.FunctionResponse{
			ID:       call.ID,
			Name:     call.Name,
			Response: map[string]any{"error": fmt.Sprintf("unknown function %q", call.Name)},
		}
	}
	return f.Call(ctx, call.ID, call.Args)
}

// NewDeclaration collects the declarations of a function set, in order.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		decls = append(decls, f.Declaration())
	}
	return decls
}

// Func adapts a declaration and a closure into a Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }

func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}
