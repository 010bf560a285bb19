package solver

import (
	"context"
	"fmt"
	"testing"

	"github.com/limaJavier/allocation/pkg/model"
	. "github.com/onsi/gomega"
)

func TestOptimalSolversAgree(t *testing.T) {
	instances := []struct {
		courses, students, maxRequests, maxCapacity int
	}{
		{2, 4, 2, 2},
		{3, 6, 3, 3},
		{4, 6, 4, 2},
		{3, 8, 2, 4},
		{5, 5, 5, 1},
	}

	for _, instance := range instances {
		for seed := range uint64(8) {
			t.Run(fmt.Sprintf("%dx%d seed %d", instance.courses, instance.students, seed), func(t *testing.T) {
				g := NewWithT(t)
				input := model.GenerateInput(instance.courses, instance.students, instance.maxRequests, instance.maxCapacity, seed)

				exhaustive := NewExhaustiveSolver().Solve(context.Background(), input.Capacities, input.Students)
				dynamic := NewDynamicSolver().Solve(context.Background(), input.Capacities, input.Students)
				greedy := NewGreedySolver().Solve(context.Background(), input.Capacities, input.Students)

				g.Expect(exhaustive.Cancelled).To(BeFalse())
				g.Expect(dynamic.Cancelled).To(BeFalse())
				g.Expect(exhaustive.Dissatisfaction).To(BeNumerically("~", dynamic.Dissatisfaction, 1e-9))
				g.Expect(greedy.Dissatisfaction).To(BeNumerically(">=", dynamic.Dissatisfaction-1e-9))

				for _, result := range []Result{exhaustive, dynamic, greedy} {
					g.Expect(model.ValidateCapacity(result.Assignment, input.Capacities)).To(BeTrue())
					g.Expect(result.Dissatisfaction).To(BeNumerically(">=", 0.0))
					g.Expect(result.Dissatisfaction).To(BeNumerically("<=", 1.0))
					g.Expect(result.Assignment).To(HaveLen(len(input.Students)))
				}
			})
		}
	}
}

func TestMoreCapacityNeverHurts(t *testing.T) {
	g := NewWithT(t)

	for seed := range uint64(10) {
		input := model.GenerateInput(3, 6, 3, 2, seed)
		larger := make([]int, len(input.Capacities))
		for course, capacity := range input.Capacities {
			larger[course] = capacity + 1
		}

		tight := NewDynamicSolver().Solve(context.Background(), input.Capacities, input.Students)
		loose := NewDynamicSolver().Solve(context.Background(), larger, input.Students)

		g.Expect(loose.Dissatisfaction).To(BeNumerically("<=", tight.Dissatisfaction+1e-9), "seed %d", seed)
	}
}

func TestUnlimitedCapacity(t *testing.T) {
	g := NewWithT(t)
	input := model.GenerateInput(3, 5, 3, 1, 5)
	unlimited := make([]int, len(input.Capacities))
	for course := range unlimited {
		unlimited[course] = len(input.Students)
	}

	for _, solver := range allSolvers() {
		result := solver.Solve(context.Background(), unlimited, input.Students)

		g.Expect(result.Dissatisfaction).To(BeZero(), solver.Name())
		for _, student := range input.Students {
			g.Expect(result.Assignment[student.Code]).To(HaveLen(len(student.Requests)), solver.Name())
		}
	}
}
