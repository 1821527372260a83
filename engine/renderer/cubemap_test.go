package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidFace(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFaceDirectionRoundTrip(t *testing.T) {
	coords := []float32{0.1, 0.25, 0.5, 0.8}
	for f := range camera.CubeFaceCount {
		face := camera.CubeFace(f)
		for _, s := range coords {
			for _, tc := range coords {
				gotFace, gotS, gotT := DirectionToFace(FaceDirection(face, s, tc))
				require.Equal(t, face, gotFace, "face %s s=%v t=%v", face, s, tc)
				assert.InDelta(t, s, gotS, 1e-5)
				assert.InDelta(t, tc, gotT, 1e-5)
			}
		}
	}
}

func TestFaceCenterIsFaceAxis(t *testing.T) {
	for f := range camera.CubeFaceCount {
		face := camera.CubeFace(f)
		assert.True(t, FaceDirection(face, 0.5, 0.5).ApproxEqual(face.Direction(), 1e-6), "face %s", face)
	}
}

func TestSampleSelectsMajorAxisFace(t *testing.T) {
	cm := NewCubeMap(4)
	palette := [camera.CubeFaceCount]color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
		{R: 255, B: 255, A: 255},
		{G: 255, B: 255, A: 255},
	}
	for i, c := range palette {
		require.NoError(t, cm.SetFace(camera.CubeFace(i), solidFace(4, c)))
	}

	for i, c := range palette {
		face := camera.CubeFace(i)
		got := cm.Sample(face.Direction().Scale(3))
		assert.Equal(t, common.ColorFromRGBA(c), got, "face %s", face)
	}
	// a diagonal direction dominated by -Y
	assert.Equal(t, common.ColorFromRGBA(palette[camera.CubeFaceNegY]), cm.Sample(common.V3(0.2, -0.9, 0.3)))
}

func TestSetFaceRejectsWrongSize(t *testing.T) {
	cm := NewCubeMap(8)
	before := cm.Generation()

	assert.ErrorIs(t, cm.SetFace(camera.CubeFacePosX, solidFace(4, color.RGBA{})), ErrCaptureSize)
	assert.ErrorIs(t, cm.SetFace(camera.CubeFacePosX, nil), ErrCaptureSize)
	assert.Equal(t, before, cm.Generation())

	require.NoError(t, cm.SetFace(camera.CubeFacePosX, solidFace(8, color.RGBA{})))
	assert.Equal(t, before+1, cm.Generation())
}

func TestFaceReturnsCopy(t *testing.T) {
	cm := NewCubeMap(2)
	img := cm.Face(camera.CubeFacePosZ)
	img.SetRGBA(0, 0, color.RGBA{R: 9})

	assert.Equal(t, color.RGBA{}, cm.Face(camera.CubeFacePosZ).RGBAAt(0, 0))
}

func TestStagingDataLayers(t *testing.T) {
	cm := NewCubeMap(3)
	layers := cm.StagingData()
	for i, l := range layers {
		assert.Equal(t, uint32(i), l.Layer)
		assert.Equal(t, uint32(3), l.Width)
		assert.Len(t, l.Pixels, 3*3*4)
	}
}

func TestNewCubeMapPanicsOnZeroSize(t *testing.T) {
	assert.Panics(t, func() { NewCubeMap(0) })
	var zero *CubeMap
	assert.Equal(t, 0, zero.Size())
}

func TestStagingDataAtResamplesFaces(t *testing.T) {
	cm := NewCubeMap(2)
	require.NoError(t, cm.SetFace(camera.CubeFaceNegY, solidFace(2, color.RGBA{R: 200, G: 100, B: 50, A: 255})))

	layers := cm.StagingDataAt(8)
	for _, l := range layers {
		assert.Equal(t, uint32(8), l.Width)
		assert.Equal(t, uint32(8), l.Height)
		require.Len(t, l.Pixels, 8*8*4)
	}

	want := []byte{200, 100, 50, 255}
	px := layers[camera.CubeFaceNegY].Pixels
	for i := 0; i < len(px); i += 4 {
		for c := range want {
			assert.InDelta(t, want[c], px[i+c], 1)
		}
	}
	assert.Equal(t, []byte{0, 0, 0, 0}, layers[camera.CubeFacePosX].Pixels[:4])
}
