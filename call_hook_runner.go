package tpa

import (
	"fmt"

	"github.com/theperfectapp/tpa-bridge-go/util"
)

// BeforeHookError represents an error that occurred during a before hook
type BeforeHookError struct {
	HookIndex int
	Err       error
}

func (e *BeforeHookError) Error() string {
	return fmt.Sprintf("before hook %d failed: %v", e.HookIndex, e.Err)
}

func (e *BeforeHookError) Unwrap() error {
	return e.Err
}

// AfterHookError represents an error that occurred during an after hook
type AfterHookError struct {
	HookIndex int
	Err       error
}

func (e *AfterHookError) Error() string {
	return fmt.Sprintf("after hook %d failed: %v", e.HookIndex, e.Err)
}

func (e *AfterHookError) Unwrap() error {
	return e.Err
}

// CallHookRunner manages and executes call hooks
type CallHookRunner struct {
	hooks []*CallHook
}

// NewCallHookRunner creates a new CallHookRunner with the provided hooks
func NewCallHookRunner(hooks []*CallHook) *CallHookRunner {
	return &CallHookRunner{
		hooks: hooks,
	}
}

// Run wraps forward with the registered hooks. forward is skipped when a
// before hook fails. Hooks work on a copy of the tags, so the caller's map is
// never modified. Hook errors are logged and never returned to the caller of
// the bridge.
func (r *CallHookRunner) Run(context *CallContext, forward func(context *CallContext)) {
	if len(r.hooks) == 0 {
		forward(context)
		return
	}
	if context != nil {
		context.Tags = context.Tags.Copy()
	}
	defer r.RunOnFinallyHooks(context)

	if err := r.RunBeforeHooks(context); err != nil {
		r.RunErrorHooks(context, err)
		return
	}
	forward(context)
	_ = r.RunAfterHooks(context)
}

// RunBeforeHooks runs all before hooks in order
func (r *CallHookRunner) RunBeforeHooks(context *CallContext) error {
	if context == nil {
		return nil
	}
	for i, hook := range r.hooks {
		if hook.Before != nil {
			if err := hook.Before(context); err != nil {
				util.Warnf("Before hook %d failed for %s: %v", i, context.Method, err)
				return &BeforeHookError{HookIndex: i, Err: err}
			}
		}
	}
	return nil
}

// RunAfterHooks runs all after hooks in reverse order
func (r *CallHookRunner) RunAfterHooks(context *CallContext) error {
	if context == nil {
		return nil
	}
	for i := len(r.hooks) - 1; i >= 0; i-- {
		hook := r.hooks[i]
		if hook.After != nil {
			if err := hook.After(context); err != nil {
				util.Warnf("After hook %d failed for %s: %v", i, context.Method, err)
				return &AfterHookError{HookIndex: i, Err: err}
			}
		}
	}
	return nil
}

// RunOnFinallyHooks runs all onFinally hooks in reverse order
func (r *CallHookRunner) RunOnFinallyHooks(context *CallContext) {
	if context == nil {
		return
	}
	for i := len(r.hooks) - 1; i >= 0; i-- {
		hook := r.hooks[i]
		if hook.OnFinally != nil {
			if err := hook.OnFinally(context); err != nil {
				util.Warnf("OnFinally hook %d failed for %s: %v", i, context.Method, err)
			}
		}
	}
}

// RunErrorHooks runs all error hooks in reverse order
func (r *CallHookRunner) RunErrorHooks(context *CallContext, callError error) {
	if context == nil {
		return
	}
	for i := len(r.hooks) - 1; i >= 0; i-- {
		hook := r.hooks[i]
		if hook.Error != nil {
			if err := hook.Error(context, callError); err != nil {
				util.Warnf("Error hook %d failed for %s: %v", i, context.Method, err)
			}
		}
	}
}

func (r *CallHookRunner) AddHook(hook *CallHook) {
	r.hooks = append(r.hooks, hook)
}

func (r *CallHookRunner) ClearHooks() {
	r.hooks = []*CallHook{}
}
