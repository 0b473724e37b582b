package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Point vertex shader: world-space points sized in world units.
// uScale converts world size at unit depth into pixels.
const pointVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aColor;

uniform mat4 uViewProj;
uniform float uSize;
uniform float uScale;

out vec3 vColor;

void main() {
    vec4 clip = uViewProj * vec4(aPos, 1.0);
    gl_Position = clip;
    gl_PointSize = max(1.0, uSize * uScale / max(clip.w, 1e-3));
    vColor = aColor;
}
` + "\x00"

// Hard fragment shader: round disc, premultiplied output.
const pointFragSrc = `#version 410 core

uniform float uOpacity;
uniform float uIntensity;

in vec3 vColor;
out vec4 FragColor;

void main() {
    vec2 d = gl_PointCoord - vec2(0.5);
    if (dot(d, d) > 0.25) discard;
    FragColor = vec4(vColor * uIntensity * uOpacity, uOpacity);
}
` + "\x00"

// Soft fragment shader: quadratic radial falloff for halos, trails and flashes.
const softFragSrc = `#version 410 core

uniform float uOpacity;
uniform float uIntensity;

in vec3 vColor;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5)) * 2.0; // 0=center, 1=edge
    float falloff = clamp(1.0 - dist, 0.0, 1.0);
    falloff = falloff * falloff;
    float a = uOpacity * falloff;
    FragColor = vec4(vColor * uIntensity * a, a);
}
` + "\x00"

// Fullscreen triangle from gl_VertexID; needs an (empty) VAO bound.
const screenVertSrc = `#version 410 core

out vec2 vUV;

void main() {
    vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
    vUV = p;
    gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

// Bright pass: keep what is above the threshold, soft knee.
const brightFragSrc = `#version 410 core

uniform sampler2D uScene;
uniform float uThreshold;

in vec2 vUV;
out vec4 FragColor;

void main() {
    vec3 c = texture(uScene, vUV).rgb;
    float l = max(c.r, max(c.g, c.b));
    float k = smoothstep(uThreshold, uThreshold + 0.5, l);
    FragColor = vec4(c * k, 1.0);
}
` + "\x00"

// Separable 9-tap gaussian. uDir is one texel along the blur axis.
const blurFragSrc = `#version 410 core

uniform sampler2D uTex;
uniform vec2 uDir;

in vec2 vUV;
out vec4 FragColor;

const float w[5] = float[](0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216);

void main() {
    vec3 sum = texture(uTex, vUV).rgb * w[0];
    for (int i = 1; i < 5; i++) {
        sum += texture(uTex, vUV + uDir * float(i)).rgb * w[i];
        sum += texture(uTex, vUV - uDir * float(i)).rgb * w[i];
    }
    FragColor = vec4(sum, 1.0);
}
` + "\x00"

// Composite: scene + bloom, ACES filmic tonemap, gamma.
const compositeFragSrc = `#version 410 core

uniform sampler2D uScene;
uniform sampler2D uBloom;
uniform float uStrength;
uniform float uExposure;

in vec2 vUV;
out vec4 FragColor;

vec3 aces(vec3 x) {
    const float a = 2.51;
    const float b = 0.03;
    const float c = 2.43;
    const float d = 0.59;
    const float e = 0.14;
    return clamp((x * (a * x + b)) / (x * (c * x + d) + e), 0.0, 1.0);
}

void main() {
    vec3 hdr = texture(uScene, vUV).rgb + texture(uBloom, vUV).rgb * uStrength;
    vec3 mapped = aces(hdr * uExposure);
    FragColor = vec4(pow(mapped, vec3(1.0 / 2.2)), 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}

// uniform looks up a uniform location by name.
func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}
