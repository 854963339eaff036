package craps

import "fmt"

// BoardSize is the number of distinct ordered dice outcomes. A finalized
// round exposes one winning square in [0, BoardSize).
const BoardSize = 36

// Dice maps a board square (die1-1)*6 + (die2-1) to its two dice.
func Dice(square uint8) (d1, d2 uint8, err error) {
	if square >= BoardSize {
		return 0, 0, fmt.Errorf("invalid square: %d", square)
	}
	return square/6 + 1, square%6 + 1, nil
}

// Sum returns the dice total for a board square.
func Sum(square uint8) (uint8, error) {
	d1, d2, err := Dice(square)
	if err != nil {
		return 0, err
	}
	return d1 + d2, nil
}

// IsHardway reports whether the square is doubles. The doubles squares are
// the diagonal of the 6x6 board, every 7th index.
func IsHardway(square uint8) bool {
	return square < BoardSize && square%7 == 0
}

func IsCraps(sum uint8) bool {
	return sum == 2 || sum == 3 || sum == 12
}

func IsNatural(sum uint8) bool {
	return sum == 7 || sum == 11
}

func IsPointNumber(sum uint8) bool {
	switch sum {
	case 4, 5, 6, 8, 9, 10:
		return true
	}
	return false
}

func IsFieldWinner(sum uint8) bool {
	switch sum {
	case 2, 3, 4, 9, 10, 11, 12:
		return true
	}
	return false
}

// Ways returns how many of the 36 squares roll the given total.
func Ways(sum uint8) uint8 {
	if sum < 2 || sum > 12 {
		return 0
	}
	if sum <= 7 {
		return sum - 1
	}
	return 13 - sum
}

// SumIndex maps totals 2..12 to array index 0..10.
func SumIndex(sum uint8) (int, error) {
	if sum < 2 || sum > 12 {
		return 0, fmt.Errorf("invalid dice sum: %d", sum)
	}
	return int(sum - 2), nil
}

// PointIndex maps a point number (4,5,6,8,9,10) to array index 0..5.
func PointIndex(point uint8) (int, error) {
	switch point {
	case 4:
		return 0, nil
	case 5:
		return 1, nil
	case 6:
		return 2, nil
	case 8:
		return 3, nil
	case 9:
		return 4, nil
	case 10:
		return 5, nil
	}
	return 0, fmt.Errorf("invalid point: %d", point)
}

// PointFromIndex is the inverse of PointIndex.
func PointFromIndex(i int) (uint8, error) {
	points := [6]uint8{4, 5, 6, 8, 9, 10}
	if i < 0 || i >= len(points) {
		return 0, fmt.Errorf("invalid point index: %d", i)
	}
	return points[i], nil
}

// HardwayIndex maps a hardway total (4,6,8,10) to array index 0..3.
func HardwayIndex(sum uint8) (int, error) {
	switch sum {
	case 4:
		return 0, nil
	case 6:
		return 1, nil
	case 8:
		return 2, nil
	case 10:
		return 3, nil
	}
	return 0, fmt.Errorf("invalid hardway total: %d", sum)
}

// HardwayFromIndex is the inverse of HardwayIndex.
func HardwayFromIndex(i int) (uint8, error) {
	totals := [4]uint8{4, 6, 8, 10}
	if i < 0 || i >= len(totals) {
		return 0, fmt.Errorf("invalid hardway index: %d", i)
	}
	return totals[i], nil
}

// DoubleIndex maps a doubles square to 0..5 by pip value.
func DoubleIndex(square uint8) (int, error) {
	if !IsHardway(square) {
		return 0, fmt.Errorf("square %d is not doubles", square)
	}
	return int(square / 7), nil
}
