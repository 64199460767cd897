package quick

import (
	"fmt"
	"math/rand"
	"reflect"
)

// Check is inspired by the standard quick.Check package, but enhances the
// API and tests arrays of larger sizes than the maximum of 50 hardcoded in
// testing/quick.
func Check(f interface{}) error {
	v := reflect.ValueOf(f)
	r := rand.New(rand.NewSource(0))

	var makeArray func(int) interface{}
	switch t := v.Type().In(0); t.Elem().Kind() {
	case reflect.Bool:
		makeArray = func(n int) interface{} {
			v := make([]bool, n)
			for i := range v {
				v[i] = r.Int()%2 != 0
			}
			return v
		}

	case reflect.Int16:
		makeArray = func(n int) interface{} {
			v := make([]int16, n)
			for i := range v {
				v[i] = int16(r.Intn(8))
			}
			return v
		}

	case reflect.Int32:
		makeArray = func(n int) interface{} {
			v := make([]int32, n)
			for i := range v {
				v[i] = r.Int31()
			}
			return v
		}

	case reflect.Int64:
		makeArray = func(n int) interface{} {
			v := make([]int64, n)
			for i := range v {
				v[i] = r.Int63()
			}
			return v
		}

	case reflect.Float32:
		makeArray = func(n int) interface{} {
			v := make([]float32, n)
			for i := range v {
				v[i] = r.Float32()
			}
			return v
		}

	case reflect.Float64:
		makeArray = func(n int) interface{} {
			v := make([]float64, n)
			for i := range v {
				v[i] = r.Float64()
			}
			return v
		}

	case reflect.Slice: // [][]byte
		makeArray = func(n int) interface{} {
			v := make([][]byte, n)
			for i := range v {
				b := make([]byte, r.Intn(17))
				r.Read(b)
				v[i] = b
			}
			return v
		}

	default:
		return fmt.Errorf("cannot run quick check on function with input of type %s", t)
	}

	for _, n := range [...]int{0, 1, 7, 8, 9, 30, 63, 64, 65, 255, 256, 999, 1000, 4096} {
		in := makeArray(n)
		ok := v.Call([]reflect.Value{reflect.ValueOf(in)})
		if !ok[0].Bool() {
			return fmt.Errorf("test failed on input of size %d", n)
		}
	}

	return nil
}
