package typemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardanlabs/icbindgen/parser"
	"github.com/ardanlabs/icbindgen/typemap"
)

func ctype(t *testing.T, spelling string, pointer int) parser.CType {
	t.Helper()

	fn, err := parser.ParseLine("t.h", 1, "size_t f("+spelling+" x);")
	require.NoError(t, err, spelling)

	ct := fn.Params[0].Type
	ct.Pointer = pointer
	return ct
}

func rustType(ct parser.CType, role typemap.Role) (string, error) {
	typ, err := typemap.Map(ct, role)
	if err != nil {
		return "", err
	}
	return typ.Rust(), nil
}

func TestMap(t *testing.T) {
	tests := []struct {
		c    string
		rust string
	}{
		{"char", "i8"},
		{"signed char", "i8"},
		{"unsigned char", "u8"},
		{"short", "i16"},
		{"signed short", "i16"},
		{"unsigned short", "u16"},
		{"int", "i32"},
		{"signed int", "i32"},
		{"signed", "i32"},
		{"unsigned int", "u32"},
		{"unsigned", "u32"},
		{"size_t", "usize"},
		{"uint8_t", "u8"},
		{"uint16_t", "u16"},
		{"uint32_t", "u32"},
		{"uint64_t", "u64"},
		{"float", "f32"},
		{"double", "f64"},
	}

	for _, tt := range tests {
		t.Run(tt.c, func(t *testing.T) {
			for _, role := range []typemap.Role{typemap.Input, typemap.Output} {
				got, err := rustType(ctype(t, tt.c, 0), role)
				require.NoError(t, err)
				assert.Equal(t, tt.rust, got, "scalar %s", role)
			}

			got, err := rustType(ctype(t, tt.c, 1), typemap.Input)
			require.NoError(t, err)
			assert.Equal(t, "*const "+tt.rust, got)

			got, err = rustType(ctype(t, tt.c, 1), typemap.Output)
			require.NoError(t, err)
			assert.Equal(t, "*mut "+tt.rust, got)

			got, err = rustType(ctype(t, tt.c, 2), typemap.Input)
			require.NoError(t, err)
			assert.Equal(t, "*const *const "+tt.rust, got)

			got, err = rustType(ctype(t, tt.c, 2), typemap.Output)
			require.NoError(t, err)
			assert.Equal(t, "*mut *mut "+tt.rust, got)
		})
	}
}

func TestMapUnknown(t *testing.T) {
	for _, spelling := range []string{"long", "unsigned long", "signed long", "signed float", "unsigned double"} {
		t.Run(spelling, func(t *testing.T) {
			_, err := typemap.Map(ctype(t, spelling, 0), typemap.Input)
			require.Error(t, err)

			var ute *typemap.UnknownTypeError
			require.ErrorAs(t, err, &ute)
			assert.Equal(t, spelling, ute.Type)
		})
	}
}

func TestMapDepth(t *testing.T) {
	_, err := typemap.Map(parser.CType{Name: "uint8_t", Pointer: 3}, typemap.Input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pointer depth 3")
}

func TestMapScalarNeverMutable(t *testing.T) {
	got, err := typemap.Map(parser.CType{Name: "size_t"}, typemap.Output)
	require.NoError(t, err)
	assert.False(t, got.Mutable)
	assert.True(t, got.IsScalarInteger())
}

func TestKind(t *testing.T) {
	assert.True(t, typemap.Usize.IsInteger())
	assert.False(t, typemap.Char.IsInteger())
	assert.False(t, typemap.F64.IsInteger())
	assert.Equal(t, "<invalid>", typemap.Invalid.Rust())

	k, ok := typemap.Unsigned(16)
	assert.True(t, ok)
	assert.Equal(t, typemap.U16, k)

	_, ok = typemap.Unsigned(12)
	assert.False(t, ok)
}

func TestRoleOf(t *testing.T) {
	conv := typemap.Conventions{Output: []string{"out", "dst"}, Input: []string{"in"}}

	role, known := conv.RoleOf("out")
	assert.Equal(t, typemap.Output, role)
	assert.True(t, known)

	role, known = conv.RoleOf("dst")
	assert.Equal(t, typemap.Output, role)
	assert.True(t, known)

	role, known = conv.RoleOf("in")
	assert.Equal(t, typemap.Input, role)
	assert.True(t, known)

	role, known = conv.RoleOf("key")
	assert.Equal(t, typemap.Input, role)
	assert.False(t, known)
}

func TestResolve(t *testing.T) {
	fn, err := parser.ParseLine("vint.h", 53, "unsigned int vbdgetgeq16(unsigned char **in, unsigned int n, unsigned int idx, unsigned short *key, unsigned short start);")
	require.NoError(t, err)

	sig, err := typemap.Resolve(fn, typemap.DefaultConventions())
	require.NoError(t, err)

	assert.Equal(t, "vbdgetgeq16", sig.Name)
	assert.Equal(t, "u32", sig.Return.Rust())

	got := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		got[i] = p.Name + ": " + p.Type.Rust()
	}
	assert.Equal(t, []string{
		"in: *const *const u8",
		"n: u32",
		"idx: u32",
		"key: *const u16",
		"start: u16",
	}, got)

	assert.Equal(t, []string{"key"}, sig.Reviews())
}

func TestResolveReviewsPointersOnly(t *testing.T) {
	fn, err := parser.ParseLine("x.h", 1, "size_t f(uint8_t *in, size_t count, uint32_t *dst, unsigned short key);")
	require.NoError(t, err)

	sig, err := typemap.Resolve(fn, typemap.DefaultConventions())
	require.NoError(t, err)

	assert.Equal(t, []string{"dst"}, sig.Reviews())
	assert.False(t, sig.Params[2].Type.Mutable)
}

func TestResolveOutput(t *testing.T) {
	fn, err := parser.ParseLine("vp4.h", 2, "size_t p4nenc8(uint8_t *in, size_t n, unsigned char *out);")
	require.NoError(t, err)

	sig, err := typemap.Resolve(fn, typemap.DefaultConventions())
	require.NoError(t, err)

	assert.Equal(t, "*const u8", sig.Params[0].Type.Rust())
	assert.Equal(t, "*mut u8", sig.Params[2].Type.Rust())
	assert.Empty(t, sig.Reviews())
}

func TestResolveUnknownType(t *testing.T) {
	fn, err := parser.ParseLine("x.h", 9, "size_t f(long *in, size_t n, unsigned char *out);")
	require.NoError(t, err)

	_, err = typemap.Resolve(fn, typemap.DefaultConventions())
	require.Error(t, err)

	var ute *typemap.UnknownTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "f", ute.Function)
	assert.Equal(t, "long *", ute.Type)
	assert.Equal(t, `x.h:9: f: unknown type "long *"`, err.Error())
}

func TestResolveAllStops(t *testing.T) {
	good, err := parser.ParseLine("x.h", 1, "size_t f(uint8_t *in);")
	require.NoError(t, err)
	bad, err := parser.ParseLine("x.h", 2, "long g(uint8_t *in);")
	require.NoError(t, err)

	_, err = typemap.ResolveAll([]parser.Function{good, bad}, typemap.DefaultConventions())
	var ute *typemap.UnknownTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "g", ute.Function)
}

func TestCheckReviews(t *testing.T) {
	clean, err := parser.ParseLine("x.h", 1, "size_t f(uint8_t *in, size_t n, unsigned char *out);")
	require.NoError(t, err)
	guessed, err := parser.ParseLine("x.h", 2, "size_t g(uint8_t *src, size_t n, unsigned char *out);")
	require.NoError(t, err)

	sigs, err := typemap.ResolveAll([]parser.Function{clean}, typemap.DefaultConventions())
	require.NoError(t, err)
	assert.NoError(t, typemap.CheckReviews(sigs))

	sigs, err = typemap.ResolveAll([]parser.Function{clean, guessed}, typemap.DefaultConventions())
	require.NoError(t, err)

	err = typemap.CheckReviews(sigs)
	var re *typemap.ReviewError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, []string{"g(src) at x.h:2"}, re.Params)
}
