package difffilter

import (
	"testing"

	"github.com/hammal/difffilter/gonumExtensions"
	"github.com/hammal/difffilter/ssm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDesign(t *testing.T) {
	filter, err := Design(2, 0.1, 0.01)
	require.NoError(t, err)

	assert.Equal(t, 2, filter.TransferFunction.Order())
	assert.False(t, filter.Continuous.IsDiscrete())
	assert.True(t, filter.Discrete.IsDiscrete())

	disc := filter.Discrete
	for _, m := range []*mat.Dense{disc.A(), disc.B(), disc.C(), disc.D()} {
		assert.False(t, gonumExtensions.NANORINF(m))
	}
	r, c := disc.A().Dims()
	assert.Equal(t, [2]int{2, 2}, [2]int{r, c})
	r, c = disc.B().Dims()
	assert.Equal(t, [2]int{2, 1}, [2]int{r, c})
	r, c = disc.C().Dims()
	assert.Equal(t, [2]int{3, 2}, [2]int{r, c})
	r, c = disc.D().Dims()
	assert.Equal(t, [2]int{3, 1}, [2]int{r, c})

	again, err := Design(2, 0.1, 0.01)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(disc.A(), again.Discrete.A(), 1e-9))
	assert.True(t, mat.EqualApprox(disc.B(), again.Discrete.B(), 1e-9))
}

func TestDesignErrors(t *testing.T) {
	_, err := Design(2, -0.1, 0.01)
	assert.ErrorIs(t, err, ssm.ErrInvalidTimeConstant)

	_, err = Design(2, 0.1, 0)
	assert.ErrorIs(t, err, ssm.ErrInvalidStep)
}

func TestDesignOrderZero(t *testing.T) {
	filter, err := Design(0, 0.1, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 0, filter.Discrete.StateSpaceOrder())
	assert.Equal(t, 1., filter.Discrete.D().At(0, 0))
}

func TestDesignRealizesItsTransferFunction(t *testing.T) {
	filter, err := Design(3, 0.2, 0.01, ssm.WithConvention(ssm.NegatedFeedback))
	require.NoError(t, err)

	want, err := ssm.FromDifferentiator(filter.TransferFunction, ssm.WithConvention(ssm.NegatedFeedback))
	require.NoError(t, err)
	assert.True(t, mat.Equal(want.A(), filter.Continuous.A()))
	assert.True(t, mat.Equal(want.C(), filter.Continuous.C()))
	assert.Equal(t, 1/filter.TransferFunction.LeadingCoefficient(), filter.Continuous.B().At(2, 0))
}

func TestDesignOverflow(t *testing.T) {
	_, err := Design(14, 0.1, 0.01)
	assert.ErrorIs(t, err, ssm.ErrNonFinite)
}
