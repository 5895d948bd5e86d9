package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-scenes/engine/camera"
	"github.com/Carmen-Shannon/oxy-scenes/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scenes/engine/scene"
)

func TestWorldBoundsFollowsTransform(t *testing.T) {
	obj := game_object.NewGameObject(geometry.NewBox(2, 2, 2), game_object.WithPosition(3, 0, 0))
	items := buildDrawList(scene.NewScene("bounds", scene.WithObjects(obj)))
	if len(items) != 1 {
		t.Fatalf("draw list has %d items, want 1", len(items))
	}

	lo, hi := worldBounds(items[0])
	if !lo.ApproxEqualThreshold(mgl32.Vec3{2, -1, -1}, 1e-5) || !hi.ApproxEqualThreshold(mgl32.Vec3{4, 1, 1}, 1e-5) {
		t.Errorf("bounds = %v..%v, want (2,-1,-1)..(4,1,1)", lo, hi)
	}
}

func TestCullDrawListDropsOffscreenObjects(t *testing.T) {
	visible := game_object.NewGameObject(geometry.NewBox(1, 1, 1))
	left := game_object.NewGameObject(geometry.NewBox(1, 1, 1), game_object.WithPosition(-100, 0, 0))
	behind := game_object.NewGameObject(geometry.NewBox(1, 1, 1), game_object.WithPosition(0, 0, 20))
	items := buildDrawList(scene.NewScene("cull", scene.WithObjects(visible, left, behind)))

	got := cullDrawList(items, camera.NewCamera().ViewProjectionMatrix())
	if len(got) != 1 || got[0].objectID != visible.ID() {
		t.Fatalf("kept %d items, want only the object at the origin", len(got))
	}
}
