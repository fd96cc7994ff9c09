package model

// This file implements the five solver callbacks (spec §4.7 point 2 / §6):
// EvalF, EvalG, EvalGradF, EvalJacG, EvalH. Every method requires Structure
// to have run first; none of them mutate the structure phase's own state.

// EvalF returns the objective value at x, signed by the model's
// ObjectiveSense.
func (m *Model) EvalF(x []float64) (float64, error) {
	if !m.structureReady {
		return 0, ErrStructureNotReady
	}
	sign := m.objectiveSense.sign()
	var total float64
	if m.linearObjective != nil {
		var row [1]float64
		if err := m.linearObjective.EvalFunction(x, row[:]); err != nil {
			return 0, err
		}
		total += row[0]
	}
	if m.quadraticObjective != nil {
		var row [1]float64
		if err := m.quadraticObjective.EvalFunction(x, row[:]); err != nil {
			return 0, err
		}
		total += row[0]
	}
	if m.nlObjectiveActive {
		v, err := m.nl.EvalObjective(x)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return sign * total, nil
}

// EvalG writes every constraint row's value into g, in the internal
// [linear | quadratic | nonlinear] row order (see JacobianStructure).
// g must have length TotalConstraintRows().
func (m *Model) EvalG(x, g []float64) error {
	if !m.structureReady {
		return ErrStructureNotReady
	}
	nLin, nQuad := m.s.nLin, m.s.nQuad
	if err := m.linearConstraints.EvalFunction(x, g[:nLin]); err != nil {
		return err
	}
	if err := m.quadraticConstraints.EvalFunction(x, g[nLin:nLin+nQuad]); err != nil {
		return err
	}
	return m.nl.EvalConstraints(x, g[nLin+nQuad:])
}

// EvalGradF writes the sparse objective gradient into gradF, one entry per
// GradientStructure() column, signed by the model's ObjectiveSense.
// gradF must have length len(GradientStructure()) and is zeroed first.
func (m *Model) EvalGradF(x, gradF []float64) error {
	if !m.structureReady {
		return ErrStructureNotReady
	}
	for i := range gradF {
		gradF[i] = 0
	}
	sign := m.objectiveSense.sign()

	if m.linearObjective != nil {
		jac := make([]float64, len(m.s.linObjGradSlots))
		if err := m.linearObjective.EvalJacobian(jac); err != nil {
			return err
		}
		for k, slot := range m.s.linObjGradSlots {
			gradF[slot] += sign * jac[k]
		}
	}
	if m.quadraticObjective != nil {
		jac := make([]float64, len(m.s.quadObjGradSlots))
		if err := m.quadraticObjective.EvalJacobian(x, jac); err != nil {
			return err
		}
		for k, slot := range m.s.quadObjGradSlots {
			gradF[slot] += sign * jac[k]
		}
	}
	if m.nlObjectiveActive {
		raw := make([]float64, len(gradF))
		if err := m.nl.EvalObjectiveGradient(x, raw); err != nil {
			return err
		}
		for i, v := range raw {
			gradF[i] += sign * v
		}
	}
	return nil
}

// EvalJacG writes every constraint row's Jacobian values into jac, in the
// same (row, col) order JacobianStructure() returns. jac must have length
// len(JacobianStructure rows).
func (m *Model) EvalJacG(x, jac []float64) error {
	if !m.structureReady {
		return ErrStructureNotReady
	}
	linNNZ := m.linearConstraints.NNZ()
	_, quadCols := m.quadraticConstraints.AnalyzeJacobianStructure()
	quadNNZ := len(quadCols)

	if err := m.linearConstraints.EvalJacobian(jac[:linNNZ]); err != nil {
		return err
	}
	if err := m.quadraticConstraints.EvalJacobian(x, jac[linNNZ:linNNZ+quadNNZ]); err != nil {
		return err
	}
	return m.nl.EvalConstraintsJacobian(x, jac[linNNZ+quadNNZ:])
}

// EvalH writes the Lagrangian Hessian (objective, signed and scaled by
// sigma, plus every constraint row weighted by the matching entry of
// lambda) into h, in the same slot order HessianStructure() returns. h
// must have length len(HessianStructure rows) and is zeroed first.
func (m *Model) EvalH(x, lambda []float64, sigma float64, h []float64) error {
	if !m.structureReady {
		return ErrStructureNotReady
	}
	for i := range h {
		h[i] = 0
	}
	sign := m.objectiveSense.sign()
	nLin, nQuad := m.s.nLin, m.s.nQuad

	if m.quadraticObjective != nil {
		if err := m.quadraticObjective.EvalLagrangianHessian([]float64{sign * sigma}, h); err != nil {
			return err
		}
	}
	if err := m.quadraticConstraints.EvalLagrangianHessian(lambda[nLin:nLin+nQuad], h); err != nil {
		return err
	}
	return m.nl.EvalLagrangianHessian(x, lambda[nLin+nQuad:], sign*sigma, h)
}
