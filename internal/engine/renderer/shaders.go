package renderer

const sceneVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;
layout (location = 3) in vec4 aColor;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;
out vec2 vTexCoord;
out vec4 vColor;

void main() {
	gl_Position = uProjection * uView * uModel * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
	vTexCoord = aTexCoord;
	vColor = aColor;
}
`

const sceneFragmentShader = `
#version 410 core

uniform sampler2D uTexture;
uniform vec4 uTint;
uniform vec3 uLightDir;
uniform int uLighting;

in vec3 vNormal;
in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;

void main() {
	vec4 base = texture(uTexture, vTexCoord) * vColor * uTint;
	if (base.a < 0.05) {
		discard;
	}
	if (uLighting != 0) {
		float diffuse = max(dot(normalize(vNormal), -normalize(uLightDir)), 0.0);
		base.rgb *= 0.35 + 0.65 * diffuse;
	}
	FragColor = base;
}
`

const solidVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const solidFragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

const textVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

uniform mat4 uProjection;

out vec2 vTexCoord;
out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vTexCoord = aTexCoord;
	vColor = aColor;
}
`

const textFragmentShader = `
#version 410 core

uniform sampler2D uTexture;

in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;

void main() {
	float alpha = texture(uTexture, vTexCoord).a;
	FragColor = vec4(vColor.rgb, vColor.a * alpha);
}
`
