// Copyright 2024 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package estimator

import (
	"fmt"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of fits kept by a cache.
const DefaultCacheSize = 16

// Cache keeps the most recently used fits of one trajectory by order, so
// comparisons of neighbouring orders fit every order only once.
type Cache struct {
	traj   *stochastic.Trajectory
	layout contexttree.Layout
	fits   *lru.Cache
	misses int
}

// NewCache creates a cache holding up to size fits of a trajectory.
func NewCache(traj *stochastic.Trajectory, size int, layout contexttree.Layout) (*Cache, error) {
	fits, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("cannot create fit cache; %v", err)
	}
	return &Cache{traj: traj, layout: layout, fits: fits}, nil
}

// Trajectory returns the trajectory the fits are computed on.
func (c *Cache) Trajectory() *stochastic.Trajectory {
	return c.traj
}

// Fit returns the fit of order k, computing it on a miss.
func (c *Cache) Fit(k int) (*Result, error) {
	if v, ok := c.fits.Get(k); ok {
		return v.(*Result), nil
	}
	res, err := FitLayout(c.traj, k, c.layout)
	if err != nil {
		return nil, err
	}
	c.misses++
	c.fits.Add(k, res)
	return res, nil
}

// Misses returns the number of fits computed so far.
func (c *Cache) Misses() int {
	return c.misses
}
