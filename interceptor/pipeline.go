package interceptor

import "context"

// Pipeline runs a call through the execution/serialization/retry-loop/
// completion phases, invoking every registered Interceptor's hooks at each
// phase in registration order.
type Pipeline struct {
	interceptors []Interceptor
}

// NewPipeline builds a Pipeline from interceptors, run in the given order.
func NewPipeline(interceptors ...Interceptor) *Pipeline {
	return &Pipeline{interceptors: interceptors}
}

// hookFn names a single-phase hook to run across every registered
// interceptor.
type hookFn func(Interceptor, context.Context, *Context) error

func (p *Pipeline) runModify(ctx context.Context, ic *Context, hook hookFn) error {
	for _, i := range p.interceptors {
		if err := hook(i, ctx, ic); err != nil {
			return err
		}
	}
	return nil
}

// runRead runs every interceptor's read hook for the phase regardless of
// whether an earlier one recorded an error, per spec: "a raised error
// transitions the call to the error path but still runs subsequent read*
// hooks of the same phase."
func (p *Pipeline) runRead(ctx context.Context, ic *Context, hook hookFn) {
	for _, i := range p.interceptors {
		if err := hook(i, ctx, ic); err != nil {
			ic.Fail(err)
		}
	}
}

// Attempt holds the caller-supplied actions for a single retry-loop
// iteration: sign the request, transmit it, and deserialize the response.
type Attempt struct {
	Sign        func(context.Context, *Context) error
	Transmit    func(context.Context, *Context) error
	Deserialize func(context.Context, *Context) error
}

// RunAttempt executes phases 5-12 (readBeforeAttempt through
// modifyBeforeAttemptCompletion/readAfterAttempt) for a single retry
// iteration. It returns the attempt's error, if any, for the caller's retry
// orchestrator to classify; it does not itself decide whether to retry.
func (p *Pipeline) RunAttempt(ctx context.Context, ic *Context, a Attempt) error {
	ic.err = nil

	p.runRead(ctx, ic, Interceptor.ReadBeforeAttempt)
	if err := ic.err; err != nil {
		p.runModify(ctx, ic, Interceptor.ModifyBeforeAttemptCompletion)
		p.runRead(ctx, ic, Interceptor.ReadAfterAttempt)
		return err
	}

	if err := p.runModify(ctx, ic, Interceptor.ModifyBeforeSigning); err != nil {
		ic.Fail(err)
	}
	if ic.err == nil {
		p.runRead(ctx, ic, Interceptor.ReadBeforeSigning)
	}
	if ic.err == nil {
		if err := a.Sign(ctx, ic); err != nil {
			ic.Fail(err)
		}
	}
	if ic.err == nil {
		p.runRead(ctx, ic, Interceptor.ReadAfterSigning)
	}

	if ic.err == nil {
		if err := p.runModify(ctx, ic, Interceptor.ModifyBeforeTransmit); err != nil {
			ic.Fail(err)
		}
	}
	if ic.err == nil {
		p.runRead(ctx, ic, Interceptor.ReadBeforeTransmit)
	}
	if ic.err == nil {
		if err := a.Transmit(ctx, ic); err != nil {
			ic.Fail(err)
		}
	}
	// readAfterTransmit always runs if we got as far as attempting
	// transmission, since it may want to observe a transport failure.
	p.runRead(ctx, ic, Interceptor.ReadAfterTransmit)

	if ic.err == nil {
		if err := p.runModify(ctx, ic, Interceptor.ModifyBeforeDeserialization); err != nil {
			ic.Fail(err)
		}
	}
	if ic.err == nil {
		p.runRead(ctx, ic, Interceptor.ReadBeforeDeserialization)
	}
	if ic.err == nil {
		if err := a.Deserialize(ctx, ic); err != nil {
			ic.Fail(err)
		}
	}
	p.runRead(ctx, ic, Interceptor.ReadAfterDeserialization)

	if err := p.runModify(ctx, ic, Interceptor.ModifyBeforeAttemptCompletion); err != nil {
		ic.Fail(err)
	}
	p.runRead(ctx, ic, Interceptor.ReadAfterAttempt)

	return ic.err
}

// Execute runs phases 1-4 (readBeforeExecution through
// modifyBeforeRetryLoop), then retryLoop (which should drive the attempt
// loop via RunAttempt and the Retry Orchestrator's classification), then
// phase 14 (modifyBeforeCompletion/readAfterExecution), which always runs
// even if an earlier phase failed.
func (p *Pipeline) Execute(
	ctx context.Context,
	ic *Context,
	serialize func(context.Context, *Context) error,
	retryLoop func(context.Context, *Context) error,
) error {
	p.runRead(ctx, ic, Interceptor.ReadBeforeExecution)

	if ic.err == nil {
		if err := p.runModify(ctx, ic, Interceptor.ModifyBeforeSerialization); err != nil {
			ic.Fail(err)
		}
	}
	if ic.err == nil {
		p.runRead(ctx, ic, Interceptor.ReadBeforeSerialization)
	}
	if ic.err == nil {
		if err := serialize(ctx, ic); err != nil {
			ic.Fail(err)
		}
	}
	if ic.err == nil {
		p.runRead(ctx, ic, Interceptor.ReadAfterSerialization)
	}

	if ic.err == nil {
		if err := p.runModify(ctx, ic, Interceptor.ModifyBeforeRetryLoop); err != nil {
			ic.Fail(err)
		}
	}

	if ic.err == nil {
		if err := retryLoop(ctx, ic); err != nil {
			ic.Fail(err)
		}
	}

	if err := p.runModify(ctx, ic, Interceptor.ModifyBeforeCompletion); err != nil {
		ic.Fail(err)
	}
	p.runRead(ctx, ic, Interceptor.ReadAfterExecution)

	return ic.err
}
