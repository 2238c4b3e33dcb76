package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyedStore struct {
	values map[string]any
}

func (k *keyedStore) Get(key string) (any, bool) {
	v, ok := k.values[key]
	return v, ok
}

func (k *keyedStore) Set(key string, value any) {
	k.values[key] = value
}

func TestResolvePathMaps(t *testing.T) {
	data := map[string]any{
		"user": map[string]any{
			"profile": map[string]any{
				"email": "a@b.c",
			},
			"age": 30,
		},
	}

	assert.Equal(t, "a@b.c", resolvePath(data, "user.profile.email", nil))
	assert.Equal(t, 30, resolvePath(data, "user.age", nil))
	assert.Equal(t, "fallback", resolvePath(data, "user.profile.phone", "fallback"))
	assert.Equal(t, "fallback", resolvePath(data, "missing.deep.path", "fallback"))
}

func TestResolvePathNilMidway(t *testing.T) {
	data := map[string]any{
		"user": map[string]any{
			"profile": nil,
		},
	}

	assert.Equal(t, "def", resolvePath(data, "user.profile.email", "def"))
}

func TestResolvePathStructs(t *testing.T) {
	type Profile struct {
		Email string
	}

	type User struct {
		Profile *Profile
		Age     int
	}

	u := User{Profile: &Profile{Email: "a@b.c"}, Age: 30}

	assert.Equal(t, "a@b.c", resolvePath(u, "Profile.Email", nil))
	assert.Equal(t, "a@b.c", resolvePath(&u, "Profile.Email", nil))
	assert.Equal(t, 30, resolvePath(u, "Age", nil))

	empty := User{}
	assert.Equal(t, "def", resolvePath(empty, "Profile.Email", "def"))
}

func TestResolvePathGetter(t *testing.T) {
	store := &keyedStore{values: map[string]any{
		"inner": map[string]any{"x": 1},
	}}

	assert.Equal(t, 1, resolvePath(store, "inner.x", nil))
	assert.Equal(t, "def", resolvePath(store, "inner.y", "def"))
}

func TestWritePathCreatesIntermediates(t *testing.T) {
	target := map[string]any{}

	require.NoError(t, writePath(target, "user.profile.email", "a@b.c"))

	profile := target["user"].(map[string]any)["profile"].(map[string]any)
	assert.Equal(t, "a@b.c", profile["email"])
}

func TestWritePathExistingBranch(t *testing.T) {
	target := map[string]any{
		"user": map[string]any{"name": "kept"},
	}

	require.NoError(t, writePath(target, "user.email", "a@b.c"))

	user := target["user"].(map[string]any)
	assert.Equal(t, "kept", user["name"])
	assert.Equal(t, "a@b.c", user["email"])
}

func TestWritePathStruct(t *testing.T) {
	type Profile struct {
		Email string
	}

	type User struct {
		Profile Profile
		Age     int
	}

	var u User

	require.NoError(t, writePath(&u, "Profile.Email", "a@b.c"))
	require.NoError(t, writePath(&u, "Age", 30))

	assert.Equal(t, "a@b.c", u.Profile.Email)
	assert.Equal(t, 30, u.Age)
}

func TestWritePathTypeMismatch(t *testing.T) {
	type User struct {
		Age int
	}

	var u User

	err := writePath(&u, "Age", "thirty")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssignTarget)
}

func TestWritePathSetter(t *testing.T) {
	store := &keyedStore{values: map[string]any{}}

	require.NoError(t, writePath(store, "user.email", "a@b.c"))

	user := store.values["user"].(map[string]any)
	assert.Equal(t, "a@b.c", user["email"])
}

func TestWritePathNilMapEntry(t *testing.T) {
	target := map[string]any{
		"a": (map[string]any)(nil),
	}

	require.NoError(t, writePath(target, "a.b", "v"))

	a := target["a"].(map[string]any)
	assert.Equal(t, "v", a["b"])
}

func TestWritePathNilStructMapField(t *testing.T) {
	type record struct {
		Meta map[string]any
	}

	var r record

	require.NoError(t, writePath(&r, "Meta.key", "v"))
	assert.Equal(t, "v", r.Meta["key"])
}

func TestWritePathNilMapTarget(t *testing.T) {
	err := writePath((map[string]any)(nil), "a", "v")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssignTarget)

	err = writePath((map[string]any)(nil), "a.b", "v")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssignTarget)
}

func TestWritePathNilSetterEntry(t *testing.T) {
	store := &keyedStore{values: map[string]any{
		"user": (map[string]any)(nil),
	}}

	require.NoError(t, writePath(store, "user.email", "a@b.c"))

	user := store.values["user"].(map[string]any)
	assert.Equal(t, "a@b.c", user["email"])
}

func TestResolveOrCreate(t *testing.T) {
	target := map[string]any{}

	sub, err := resolveOrCreate(target, "a.b")
	require.NoError(t, err)

	sub.(map[string]any)["c"] = 1
	assert.Equal(t, 1, target["a"].(map[string]any)["b"].(map[string]any)["c"])
}
