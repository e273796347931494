package session

import (
	"context"
	"strconv"

	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Table calculates a feature list on many inputs in parallel.
type Table[T domain.Input] struct {
	calc   *CalculatorMulti[T]
	tracer ports.Tracer
	logger ports.Logger
}

// NewTable returns a Table calculating with calc.
func NewTable[T domain.Input](calc *CalculatorMulti[T], tracer ports.Tracer, logger ports.Logger) *Table[T] {
	return &Table[T]{calc: calc, tracer: tracer, logger: logger}
}

// Names returns the column names.
func (t *Table[T]) Names() []string {
	return t.calc.Names()
}

// CalcRows calculates one results vector per input, in input order.
// Each worker calculates on its own duplicate of the calculator. With a nil
// reporter the first failing row cancels the others and its error is returned;
// otherwise failures are reported and the affected cells left invalid.
func (t *Table[T]) CalcRows(
	ctx context.Context,
	inputs []T,
	workers int,
	reporter ports.ErrorReporter,
) ([]domain.ResultsVector, error) {
	workers = max(1, min(workers, len(inputs)))

	calcs := make([]*CalculatorMulti[T], workers)
	calcs[0] = t.calc
	for i := 1; i < workers; i++ {
		dup, err := t.calc.DuplicateForNewThread()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to duplicate calculator")
		}
		calcs[i] = dup
	}

	ctx, span := t.tracer.Start(ctx, "calculate table",
		ports.WithAttribute("rows", len(inputs)),
		ports.WithAttribute("workers", workers),
	)
	defer span.End()
	t.tracer.EmitPlan(ctx, t.calc.Names())

	if t.logger != nil {
		t.logger.Debug("calculating " + strconv.Itoa(len(inputs)) + " rows on " + strconv.Itoa(workers) + " workers")
	}

	results := make([]domain.ResultsVector, len(inputs))
	g, groupCtx := errgroup.WithContext(ctx)
	for w := range workers {
		calc := calcs[w]
		g.Go(func() error {
			for i := w; i < len(inputs); i += workers {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				res, err := t.calcRow(groupCtx, calc, i, inputs[i], reporter)
				if err != nil {
					return err
				}
				results[i] = res
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return results, nil
}

func (t *Table[T]) calcRow(
	ctx context.Context,
	calc *CalculatorMulti[T],
	row int,
	input T,
	reporter ports.ErrorReporter,
) (domain.ResultsVector, error) {
	_, span := t.tracer.Start(ctx, "calculate row", ports.WithAttribute("row", row))
	defer span.End()

	if reporter != nil {
		res := calc.CalcSuppressErrors(input, reporter)
		span.SetAttribute("valid", res.Valid())
		return res, nil
	}

	res, err := calc.Calc(input)
	if err != nil {
		span.RecordError(err)
		return domain.ResultsVector{}, zerr.With(zerr.Wrap(err, "failed to calculate row"), "row", row)
	}
	return res, nil
}
