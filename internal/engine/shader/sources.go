package shader

// VertexSource transforms the prebuilt world-space mesh. Part transforms are
// baked into the vertex buffer, so only the camera matrices apply here.
const VertexSource = `#version 410 core

layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec2 aUV;
layout(location = 2) in vec3 aNormal;

uniform mat4 uProjection;
uniform mat4 uView;

out vec2 vUV;
out vec3 vNormal;

void main() {
	vUV = aUV;
	vNormal = aNormal;
	gl_Position = uProjection * uView * vec4(aPosition, 1.0);
}
`

// FragmentSource samples the skin atlas with flat lambert shading and draws
// the editing overlays: texel grid, hover highlight and the marching-ants
// selection outline.
const FragmentSource = `#version 410 core

in vec2 vUV;
in vec3 vNormal;

uniform sampler2D uTexture;
uniform sampler2D uSelection;
uniform int uHasSelection;
uniform int uShowGrid;
uniform vec2 uHoverPixel; // texel coordinates, (-1,-1) when nothing is hovered
uniform float uTexSize;
uniform float uTime;

out vec4 fragColor;

bool selectedAt(vec2 texel) {
	if (texel.x < 0.0 || texel.y < 0.0 || texel.x >= uTexSize || texel.y >= uTexSize) {
		return false;
	}
	return texture(uSelection, (texel + 0.5) / uTexSize).r >= 0.5;
}

void main() {
	vec4 base = texture(uTexture, vUV);
	if (base.a < 0.004) {
		discard;
	}

	vec3 lightDir = normalize(vec3(0.4, 0.8, 0.6));
	float diffuse = max(dot(normalize(vNormal), lightDir), 0.0);
	float light = 0.35 + 0.65 * diffuse;

	vec3 color = base.rgb * light;

	vec2 texelPos = vUV * uTexSize;
	vec2 texel = floor(texelPos);

	if (uShowGrid == 1) {
		vec2 f = fract(texelPos);
		float border = 0.06;
		if (f.x < border || f.x > 1.0 - border || f.y < border || f.y > 1.0 - border) {
			color *= 0.7;
		}
	}

	if (texel == floor(uHoverPixel)) {
		color = mix(color, vec3(1.0, 1.0, 1.0), 0.4);
	}

	if (uHasSelection == 1 && selectedAt(texel)) {
		bool edge = !selectedAt(texel + vec2(1.0, 0.0)) ||
		            !selectedAt(texel + vec2(-1.0, 0.0)) ||
		            !selectedAt(texel + vec2(0.0, 1.0)) ||
		            !selectedAt(texel + vec2(0.0, -1.0));
		if (edge) {
			// Ant position walks the outline as time advances.
			float phase = (texel.x + texel.y) * 3.0 - uTime * 2.0;
			float ant = step(0.5, fract(phase * 0.5));
			color = mix(vec3(0.0), vec3(1.0), ant);
		}
	}

	fragColor = vec4(color, base.a);
}
`
