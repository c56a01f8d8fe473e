package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusbridge/admissions_backend/models"
)

func testAgents(n int) []models.Agent {
	agents := make([]models.Agent, n)
	for i := range agents {
		agents[i] = models.Agent{
			ID:   primitive.NewObjectID(),
			Name: "Agent",
		}
	}
	return agents
}

func TestBuildDistributionEqualSplit(t *testing.T) {
	agents := testAgents(3)

	result := buildDistribution(agents, 100)

	assert.Equal(t, 3, result.AgentsCount)
	assert.Equal(t, float64(100), result.TotalCommission)
	assert.InDelta(t, 33.3333, result.CommissionPerAgent, 0.0001)
	assert.Len(t, result.DistributedTo, 3)
	for _, share := range result.DistributedTo {
		assert.Equal(t, result.CommissionPerAgent, share.Amount)
	}
}

func TestBuildDistributionSingleAgent(t *testing.T) {
	agents := testAgents(1)

	result := buildDistribution(agents, 5000)

	assert.Equal(t, 1, result.AgentsCount)
	assert.Equal(t, float64(5000), result.CommissionPerAgent)
}

func TestBuildDistributionNoAgents(t *testing.T) {
	result := buildDistribution(nil, 100)

	assert.Equal(t, 0, result.AgentsCount)
	assert.Equal(t, float64(0), result.CommissionPerAgent)
	assert.Empty(t, result.DistributedTo)
}
