package fu

import (
	"math"
	"reflect"
)

/*
Convert converts numeric value to the required numeric type,
integers are rounded to the nearest value
*/
func Convert(v reflect.Value, tp reflect.Type) reflect.Value {
	var f float64
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f = v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f = float64(v.Uint())
	case reflect.Bool:
		if v.Bool() {
			f = 1
		}
	default:
		return v.Convert(tp)
	}
	r := reflect.New(tp).Elem()
	switch tp.Kind() {
	case reflect.Float32, reflect.Float64:
		r.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		r.SetInt(int64(math.Round(f)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		r.SetUint(uint64(math.Round(math.Max(f, 0))))
	case reflect.Bool:
		r.SetBool(f != 0)
	default:
		return v.Convert(tp)
	}
	return r
}
