// 指示: miu200521358
package model

import "gonum.org/v1/gonum/spatial/r3"

// Vec3 はワールド座標系の3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// NewVec3 は成分を指定してVec3を生成する。
func NewVec3(x float64, y float64, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Distance は2点間のユークリッド距離を返す。
func (v Vec3) Distance(other Vec3) float64 {
	return r3.Norm(r3.Sub(v.Vec, other.Vec))
}

// Equals は許容誤差内で一致するか判定する。
func (v Vec3) Equals(other Vec3, epsilon float64) bool {
	return v.Distance(other) <= epsilon
}
