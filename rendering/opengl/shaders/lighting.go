package shaders

// Vertex stage. Lighting is evaluated here for flat and Gouraud, and the
// eye-space vectors are passed on for per-fragment Phong.
const lightingVertexShader = `
#version 410 core

in vec4 vPosition;
in vec3 vNormal;

uniform mat4 ModelView;
uniform mat4 Projection;
uniform mat4 Transform;

uniform vec4 AmbientProduct;
uniform vec4 DiffuseProduct;
uniform vec4 SpecularProduct;
uniform vec4 LightPosition;
uniform float Shininess;

out vec3 fN;
out vec3 fE;
out vec3 fL;
out vec4 gouraudColor;
flat out vec4 flatColor;

vec4 shade(vec3 N, vec3 E, vec3 L) {
    vec3 H = normalize(L + E);
    vec4 ambient = AmbientProduct;
    float Kd = max(dot(L, N), 0.0);
    vec4 diffuse = Kd * DiffuseProduct;
    float Ks = pow(max(dot(N, H), 0.0), Shininess);
    vec4 specular = Ks * SpecularProduct;
    if (dot(L, N) < 0.0) {
        specular = vec4(0.0, 0.0, 0.0, 1.0);
    }
    vec4 color = ambient + diffuse + specular;
    color.a = 1.0;
    return color;
}

void main() {
    mat4 mv = ModelView * Transform;
    vec3 pos = (mv * vPosition).xyz;

    fN = (mv * vec4(vNormal, 0.0)).xyz;
    fE = -pos;
    fL = (ModelView * LightPosition).xyz - pos;

    vec4 color = shade(normalize(fN), normalize(fE), normalize(fL));
    gouraudColor = color;
    flatColor = color;

    gl_Position = Projection * vec4(pos, 1.0);
}
`

// Fragment stage. shadingType: 0 flat, 1 Gouraud, 2 Phong.
const lightingFragmentShader = `
#version 410 core

in vec3 fN;
in vec3 fE;
in vec3 fL;
in vec4 gouraudColor;
flat in vec4 flatColor;

uniform vec4 AmbientProduct;
uniform vec4 DiffuseProduct;
uniform vec4 SpecularProduct;
uniform float Shininess;
uniform float shadingType;

out vec4 outColor;

void main() {
    if (shadingType < 0.5) {
        outColor = flatColor;
        return;
    }
    if (shadingType < 1.5) {
        outColor = gouraudColor;
        return;
    }

    vec3 N = normalize(fN);
    vec3 E = normalize(fE);
    vec3 L = normalize(fL);
    vec3 H = normalize(L + E);

    float Kd = max(dot(L, N), 0.0);
    float Ks = pow(max(dot(N, H), 0.0), Shininess);
    vec4 specular = Ks * SpecularProduct;
    if (dot(L, N) < 0.0) {
        specular = vec4(0.0, 0.0, 0.0, 1.0);
    }
    outColor = AmbientProduct + Kd * DiffuseProduct + specular;
    outColor.a = 1.0;
}
`

// Attribute names bound by the renderer
const (
	PositionAttribute = "vPosition"
	NormalAttribute   = "vNormal"
)

// CreateLightingProgram builds the shared flat/Gouraud/Phong program
func CreateLightingProgram() (uint32, error) {
	return buildProgram(lightingVertexShader, lightingFragmentShader)
}
