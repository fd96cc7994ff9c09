package autodiff

import "github.com/lithiumgraph/nlcore/core"

// evaluateAll runs every traced instruction once, in order (each
// instruction's args only ever reference earlier positions, so a single
// forward pass is enough), and returns the per-instruction dual value.
func evaluateAll(prog *Program, x, p []float64) ([]value, error) {
	if len(x) != prog.Nx {
		return nil, ErrDimensionMismatch
	}
	if len(p) != prog.Np {
		return nil, ErrDimensionMismatch
	}

	nx := prog.Nx
	vals := make([]value, len(prog.instructions))

	for i, ins := range prog.instructions {
		switch ins.kind {
		case core.KindConstant:
			vals[i] = constantValue(nx, ins.constant)

		case core.KindVariable:
			vals[i] = seedValue(nx, ins.variablePos, x[ins.variablePos])

		case core.KindParameter:
			vals[i] = constantValue(nx, p[ins.parameterPos])

		case core.KindUnary:
			v, err := applyUnary(nx, int(ins.unaryOp), vals[ins.args[0]])
			if err != nil {
				return nil, err
			}
			vals[i] = v

		case core.KindBinary:
			l, r := vals[ins.args[0]], vals[ins.args[1]]
			switch ins.binaryOp {
			case core.Sub:
				vals[i] = sub(nx, l, r)
			case core.Div:
				v, err := div(nx, l, r)
				if err != nil {
					return nil, err
				}
				vals[i] = v
			case core.Pow:
				v, err := pow(nx, l, r)
				if err != nil {
					return nil, err
				}
				vals[i] = v
			default:
				return nil, ErrUnknownOperator
			}

		case core.KindTernary:
			l, r := vals[ins.args[0]], vals[ins.args[1]]
			thenVal, elseVal := vals[ins.args[2]], vals[ins.args[3]]
			cond, err := compareTaken(ins.compareOp, l.val, r.val)
			if err != nil {
				return nil, err
			}
			if cond {
				vals[i] = thenVal
			} else {
				vals[i] = elseVal
			}

		case core.KindNary:
			vals[i] = evalNary(nx, ins.naryOp, ins.args, vals)

		default:
			return nil, ErrUnknownOperator
		}
	}
	return vals, nil
}

func compareTaken(op core.BinaryOperator, l, r float64) (bool, error) {
	switch op {
	case core.LessThan:
		return l < r, nil
	case core.LessEqual:
		return l <= r, nil
	case core.Equal:
		return l == r, nil
	case core.GreaterEqual:
		return l >= r, nil
	case core.GreaterThan:
		return l > r, nil
	default:
		return false, ErrUnknownOperator
	}
}

func evalNary(nx int, op core.NaryOperator, args []int, vals []value) value {
	switch op {
	case core.Add:
		acc := newValue(nx) // identity: 0
		for _, a := range args {
			acc = add(nx, acc, vals[a])
		}
		return acc
	case core.Mul:
		if len(args) == 0 {
			return constantValue(nx, 1)
		}
		acc := vals[args[0]]
		for _, a := range args[1:] {
			acc = mul(nx, acc, vals[a])
		}
		return acc
	default:
		return newValue(nx)
	}
}

// EvalValues returns the Program's output values at (x, p), ignoring all
// derivative information.
func EvalValues(prog *Program, x, p []float64) ([]float64, error) {
	vals, err := evaluateAll(prog, x, p)
	if err != nil {
		return nil, err
	}
	out := make([]float64, prog.Ny)
	for i, idx := range prog.outputs {
		out[i] = vals[idx].val
	}
	return out, nil
}

// EvalJacobian returns the output values and their dense Jacobian (Ny rows,
// Nx columns) at (x, p).
func EvalJacobian(prog *Program, x, p []float64) (f []float64, jac [][]float64, err error) {
	vals, err := evaluateAll(prog, x, p)
	if err != nil {
		return nil, nil, err
	}
	f = make([]float64, prog.Ny)
	jac = make([][]float64, prog.Ny)
	for i, idx := range prog.outputs {
		f[i] = vals[idx].val
		row := make([]float64, prog.Nx)
		copy(row, vals[idx].grad)
		jac[i] = row
	}
	return f, jac, nil
}

// EvalHessianWeighted returns Sum_i w[i] * Hess(output_i) as a dense,
// row-major Nx*Nx matrix, evaluated at (x, p). w must have length Ny.
func EvalHessianWeighted(prog *Program, x, p, w []float64) ([]float64, error) {
	if len(w) != prog.Ny {
		return nil, ErrDimensionMismatch
	}
	vals, err := evaluateAll(prog, x, p)
	if err != nil {
		return nil, err
	}
	nx := prog.Nx
	out := make([]float64, nx*nx)
	for i, idx := range prog.outputs {
		wi := w[i]
		if wi == 0 {
			continue
		}
		h := vals[idx].hess
		for k := 0; k < nx*nx; k++ {
			out[k] += wi * h[k]
		}
	}
	return out, nil
}
