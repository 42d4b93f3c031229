// Package middleware decorates provider language models.
package middleware

import (
	"context"
	"time"

	"github.com/apex/log"

	"github.com/ncecere/prompt-gateway/provider"
)

// LanguageModelMiddleware returns a model that adds behavior around next.
type LanguageModelMiddleware func(next provider.LanguageModel) provider.LanguageModel

// WrapLanguageModel stacks mws around base. mws[0] sees each call first.
func WrapLanguageModel(base provider.LanguageModel, mws ...LanguageModelMiddleware) provider.LanguageModel {
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// LoggingOptions selects the entries written by LoggingLanguageModel.
// With all three flags false, successes and errors are logged.
type LoggingOptions struct {
	Logger      log.Interface // nil means log.Log
	LogRequest  bool          // debug entry before the call
	LogResponse bool          // info entry after a successful call
	LogErrors   bool          // error entry after a failed call
}

func defaultLoggingOptions(opts LoggingOptions) LoggingOptions {
	if opts.Logger == nil {
		opts.Logger = log.Log
	}
	if !opts.LogRequest && !opts.LogResponse && !opts.LogErrors {
		opts.LogResponse = true
		opts.LogErrors = true
	}
	return opts
}

// LoggingLanguageModel returns a LanguageModelMiddleware that logs
// Generate calls. Entries carry the model name, call duration and, on
// failure, the error. Prompts and responses are never logged.
func LoggingLanguageModel(opts LoggingOptions) LanguageModelMiddleware {
	opts = defaultLoggingOptions(opts)

	return func(next provider.LanguageModel) provider.LanguageModel {
		return &loggingLanguageModel{
			next: next,
			opts: opts,
		}
	}
}

type loggingLanguageModel struct {
	next provider.LanguageModel
	opts LoggingOptions
}

func (l *loggingLanguageModel) Generate(ctx context.Context, req *provider.LanguageModelRequest) (*provider.LanguageModelResponse, error) {
	start := time.Now()
	ctxLog := l.opts.Logger.WithFields(log.Fields{
		"model":    req.Model,
		"messages": len(req.Messages),
	})
	if l.opts.LogRequest {
		ctxLog.Debug("lm.generate.start")
	}

	res, err := l.next.Generate(ctx, req)
	ctxLog = ctxLog.WithField("duration", time.Since(start).String())

	if err != nil {
		if l.opts.LogErrors {
			ctxLog.WithError(err).Error("lm.generate.error")
		}
		return nil, err
	}

	if l.opts.LogResponse {
		ctxLog.WithField("stop_reason", res.StopReason).Info("lm.generate.done")
	}
	return res, nil
}
