package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pool(t *testing.T, economy, business int) []*Server {
	t.Helper()
	a, _, _ := newTestAirport(t, economy, business, DispatchClassBound, nil)
	return a.Servers()
}

func TestNewDispatchPolicy(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", DispatchClassBound},
		{DispatchClassBound, DispatchClassBound},
		{DispatchFirstReady, DispatchFirstReady},
	}
	for _, tc := range tests {
		p, err := NewDispatchPolicy(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.want, p.Name())
	}

	_, err := NewDispatchPolicy("round-robin")
	assert.Error(t, err)
	assert.False(t, ValidDispatchPolicies["round-robin"])
}

func TestClassBound_Select(t *testing.T) {
	servers := pool(t, 2, 2)
	cb := &ClassBound{}

	tests := []struct {
		name   string
		class  FareClass
		busy   []int
		wantID int // -1 for none
	}{
		{"economy picks lowest economy ID", Economy, nil, 0},
		{"business skips idle economy servers", Business, nil, 2},
		{"busy economy falls to next", Economy, []int{0}, 1},
		{"all business busy", Business, []int{2, 3}, -1},
		{"economy never takes business server", Economy, []int{0, 1}, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, s := range servers {
				s.State = ServerIdle
			}
			for _, id := range tc.busy {
				servers[id].State = ServerServing
			}
			d := cb.Select(&Passenger{Class: tc.class}, servers)
			if tc.wantID < 0 {
				assert.Nil(t, d.Server)
			} else {
				require.NotNil(t, d.Server)
				assert.Equal(t, tc.wantID, d.Server.ID)
				assert.Equal(t, tc.class, d.Server.Class)
			}
			assert.NotEmpty(t, d.Reason)
		})
	}
}

func TestFirstReady_Select_IgnoresClass(t *testing.T) {
	servers := pool(t, 1, 1)
	fr := &FirstReady{}

	d := fr.Select(&Passenger{Class: Business}, servers)
	require.NotNil(t, d.Server)
	assert.Equal(t, Economy, d.Server.Class)

	servers[0].State = ServerServing
	servers[1].State = ServerServing
	assert.Nil(t, fr.Select(&Passenger{Class: Business}, servers).Server)
}
