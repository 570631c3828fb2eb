// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sim is the model facade: it holds configuration — physics model, mesh,
// boundary conditions, solver method — and orchestrates the linear, nonlinear (Newton +
// continuation) and frontal pipelines.
package sim

import (
	"github.com/cpmech/feacore/bc"
	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/frontal"
	"github.com/cpmech/feacore/linsolve"
	"github.com/cpmech/feacore/mesh"
	"github.com/cpmech/feacore/model"
	"github.com/cpmech/feacore/newton"
	"github.com/cpmech/feacore/shp"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/utl"
)

// ModelTag selects the physics model, per setModelConfig contract.
type ModelTag string

const (
	HeatConductionScript   ModelTag = "heatConductionScript"
	FrontPropagationScript ModelTag = "frontPropagationScript"
	GeneralFormPDEScript   ModelTag = "generalFormPDEScript"
)

// CoefficientFunctions holds the general linear PDE's A,B,C,D coefficient functions of x,
// consulted only when ModelTag is GeneralFormPDEScript and the mesh is 1D.
type CoefficientFunctions struct {
	A, B, C, D fun.Func
}

// Options overrides the linear/nonlinear solver defaults for a single Solve call.
type Options struct {
	MaxIterations int
	Tolerance     float64
}

// Result is what solve(options?) returns: the solution vector and the mesh's node
// coordinates, so a caller can plot or post-process without re-deriving the mesh.
type Result struct {
	SolutionVector []float64
	NodesX         []float64
	NodesY         []float64
}

// Config aggregates every configuration surface of and drives Solve.
type Config struct {
	modelTag ModelTag
	coeffs   CoefficientFunctions
	mesh     mesh.Config
	bcs      map[string]bc.Spec
	method   string
}

// NewConfig returns an empty configuration ready for the setter calls below.
func NewConfig() *Config {
	return &Config{bcs: make(map[string]bc.Spec)}
}

// SetModelConfig selects the physics model and, for the general PDE model, its coefficient
// functions.
func (c *Config) SetModelConfig(tag ModelTag, coeffs CoefficientFunctions) {
	c.modelTag = tag
	c.coeffs = coeffs
}

// SetMeshConfig installs the mesh configuration — structured parameters or a parsed Gmsh
// payload.
func (c *Config) SetMeshConfig(m mesh.Config) {
	c.mesh = m
}

// AddBoundaryCondition attaches spec to the boundary labelled key.
func (c *Config) AddBoundaryCondition(key string, spec bc.Spec) {
	c.bcs[key] = spec
}

// SetSolverMethod selects the linear-solve strategy: "lusolve", "jacobi", "jacobi-gpu", or the
// frontal path "frontal".
func (c *Config) SetSolverMethod(method string) {
	c.method = method
}

// Solve runs the configured pipeline to completion and returns the solution.
func (c *Config) Solve(opts ...Options) (*Result, *ferr.Error) {
	if err := c.mesh.Validate(); err != nil {
		return nil, err
	}

	var m *mesh.Data
	if c.mesh.Parsed != nil {
		adapted, err := mesh.FromGmsh(c.mesh.Parsed, c.mesh.Order)
		if err != nil {
			return nil, err
		}
		m = adapted.Data
	} else {
		generated, err := mesh.Generate(&c.mesh)
		if err != nil {
			return nil, err
		}
		m = generated
	}

	kind := m.ShapeKind()
	dof := func(node, component int) int { return node - 1 }

	switch c.modelTag {
	case HeatConductionScript:
		return c.solveLinear(model.NewHeat(kind), m, dof, opts...)

	case GeneralFormPDEScript:
		var kernel model.Kernel
		if m.MeshDimension == mesh.Dim1 {
			kernel = model.NewGenPDE1D(kind, c.coeffs.A, c.coeffs.B, c.coeffs.C, c.coeffs.D)
		} else {
			kernel = model.NewGenPDE2D()
		}
		return c.solveLinear(kernel, m, dof, opts...)

	case FrontPropagationScript:
		return c.solveEikonal(kind, m, dof, opts...)
	}
	return nil, ferr.New(ferr.ConfigurationError, "sim: unknown model tag %q", c.modelTag)
}

func (c *Config) result(m *mesh.Data, x []float64) *Result {
	return &Result{SolutionVector: x, NodesX: m.NodesX, NodesY: m.NodesY}
}

// solveLinear drives the linear path: assemble → apply BC → linear solve, or, when the
// method is "frontal", the interleaved assemble+eliminate path.
func (c *Config) solveLinear(kernel model.Kernel, m *mesh.Data, dof bc.DofMap, opts ...Options) (*Result, *ferr.Error) {
	method := c.method
	if method == "" {
		method = "lusolve"
	}

	if method == "frontal" {
		constraints, err := dirichletConstraints(m, c.bcs)
		if err != nil {
			return nil, err
		}
		solver := frontal.New(kernel, m, frontal.Options{})
		x, ferr2 := solver.Solve(constraints)
		if ferr2 != nil {
			return nil, ferr2
		}
		return c.result(m, x), nil
	}

	J, R, err := model.AssembleMatrix(kernel, m, nil, 0)
	if err != nil {
		return nil, err
	}
	if err := bc.Apply(m, c.bcs, dof, J, R); err != nil {
		return nil, err
	}

	lopts := linsolve.Options{}
	if len(opts) > 0 {
		lopts.MaxIter = opts[0].MaxIterations
		lopts.Tol = opts[0].Tolerance
	}
	x, _, converged, lerr := linsolve.Dispatch(method, J, R, lopts)
	if lerr != nil {
		return nil, lerr
	}
	if !converged {
		return nil, ferr.New(ferr.DidNotConverge, "sim: linear solve %q did not converge", method)
	}
	return c.result(m, x), nil
}

// solveEikonal drives the nonlinear path: Newton iteration wrapped in the continuation loop over
// the activation parameter, applying boundary conditions inside each assemble call.
func (c *Config) solveEikonal(kind shp.Kind, m *mesh.Data, dof bc.DofMap, opts ...Options) (*Result, *ferr.Error) {
	if m.MeshDimension != mesh.Dim2 {
		return nil, ferr.New(ferr.NotImplemented, "the viscous eikonal model is not implemented in 1D")
	}
	a := &assembler{kernel: model.NewEikonal(kind), mesh: m, bcs: c.bcs, dof: dof}

	nopts := newton.Options{}
	if len(opts) > 0 {
		nopts.MaxIter = opts[0].MaxIterations
		nopts.Tol = opts[0].Tolerance
	}
	x0 := make([]float64, m.TotalNodes())
	res, err := newton.Continuation(a, x0, nopts)
	if err != nil {
		return nil, err
	}
	return c.result(m, res.X), nil
}

// assembler adapts a model.Kernel + boundary conditions into newton.Assembler, folding BC
// application into the assembly step as step 3 requires.
type assembler struct {
	kernel model.Kernel
	mesh   *mesh.Data
	bcs    map[string]bc.Spec
	dof    bc.DofMap
}

func (a *assembler) Assemble(x []float64, alpha float64) ([][]float64, []float64, *ferr.Error) {
	J, R, err := model.AssembleMatrix(a.kernel, a.mesh, x, alpha)
	if err != nil {
		return nil, nil, err
	}
	if err := bc.Apply(a.mesh, a.bcs, a.dof, J, R); err != nil {
		return nil, nil, err
	}
	return J, R, nil
}

// dirichletConstraints collects the frontal solver's Constraint list from the Dirichlet-kind
// boundary specs. Natural conditions need no constraint and are skipped; Robin and velocity
// conditions have no frontal-path equivalent and are rejected rather than silently dropped.
func dirichletConstraints(m *mesh.Data, bcs map[string]bc.Spec) ([]frontal.Constraint, *ferr.Error) {
	kind := m.ShapeKind()
	var out []frontal.Constraint
	seen := make(map[int]bool)
	for key, spec := range bcs {
		switch spec.Kind {
		case bc.KindConstantValue:
			for _, g := range utl.IntUnique(boundaryNodes(m, kind, key)) {
				if !seen[g] {
					seen[g] = true
					out = append(out, frontal.Constraint{Node: g, Value: spec.Value})
				}
			}
		case bc.KindNatural:
			// no assembly work, nothing to constrain
		default:
			return nil, ferr.New(ferr.ConfigurationError, "frontal solver only supports ConstantValue/Natural boundary conditions, got kind %v on %q", spec.Kind, key)
		}
	}
	return out, nil
}

func boundaryNodes(m *mesh.Data, kind shp.Kind, key string) []int {
	var nodes []int
	for _, s := range m.BoundaryElements[key] {
		var locals []int
		if m.MeshDimension == mesh.Dim1 {
			if s.Code == 0 {
				locals = []int{0}
			} else {
				locals = []int{len(m.Nop[s.Elem]) - 1}
			}
		} else {
			locals = shp.SideLocalVerts(kind, s.Code)
		}
		for _, li := range locals {
			nodes = append(nodes, m.Nop[s.Elem][li])
		}
	}
	return nodes
}
