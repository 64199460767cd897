package bits

func MinMaxBool(data []bool) (min, max bool) {
	if len(data) > 0 {
		min, max = true, false
		for _, v := range data {
			if v {
				max = true
			} else {
				min = false
			}
		}
	}
	return min, max
}

func MinMaxInt32(data []int32) (min, max int32) {
	if len(data) > 0 {
		min, max = data[0], data[0]
		for _, v := range data[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

func MinMaxInt64(data []int64) (min, max int64) {
	if len(data) > 0 {
		min, max = data[0], data[0]
		for _, v := range data[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}
