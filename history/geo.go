/*
	Timelinize
	Copyright (c) 2013 Matthew Holt

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package history

import (
	"math"

	"github.com/paulmach/orb"
)

// DistanceMeters returns the great-circle distance in meters between
// two points, using the haversine formula on a sphere with Earth's
// mean radius.
func DistanceMeters(a, b orb.Point) float64 {
	return haversineMeters(a.Lat(), a.Lon(), b.Lat(), b.Lon())
}

// haversineMeters computes the great-circle distance in meters between two points on Earth.
// Inputs are in degrees.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := degreesToRadians(lat1)
	phi2 := degreesToRadians(lat2)
	lambda1 := degreesToRadians(lon1)
	lambda2 := degreesToRadians(lon2)

	h := haversin(phi2-phi1) + math.Cos(phi1)*math.Cos(phi2)*haversin(lambda2-lambda1)
	return 2 * meanEarthRadiusMeters * math.Asin(math.Sqrt(math.Min(h, 1)))
}

func haversin(theta float64) float64 {
	return 0.5 * (1 - math.Cos(theta)) //nolint:mnd
}

func degreesToRadians(d float64) float64 {
	return d * (math.Pi / 180) //nolint:mnd
}

// E7ToDegrees converts an integer coordinate scaled by 1e7 into degrees.
func E7ToDegrees(e7 int64) float64 {
	return float64(e7) / placesMult
}

const (
	// IUGG mean radius of the Earth
	meanEarthRadiusMeters = 6371008.8

	placesMult = 1e7
)
